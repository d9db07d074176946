package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest entrada para registrar o editar una venta. El total se calcula al guardar.
type SaleRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	ProductID  string `json:"product_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name,omitempty"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	Quantity       int             `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
	SoldAt         time.Time       `json:"sold_at"`
	SellerID       string          `json:"seller_id,omitempty"`
	SellerUsername string          `json:"seller_username,omitempty"`
}

// SalesReportResponse ventas de un día con su total y cantidad.
type SalesReportResponse struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Sales []SaleResponse  `json:"sales"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}
