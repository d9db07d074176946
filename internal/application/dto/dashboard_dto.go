package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Date            string            `json:"date"` // día local YYYY-MM-DD
	TotalProducts   int               `json:"total_products"`
	TotalCategories int               `json:"total_categories"`
	TotalSuppliers  int               `json:"total_suppliers"`
	TotalCustomers  int               `json:"total_customers"`
	RecentProducts  []ProductResponse `json:"recent_products"`
	TodaySales      []SaleResponse    `json:"today_sales"`
	TodayTotal      decimal.Decimal   `json:"today_total"`
	TodayCount      int               `json:"today_count"`
}
