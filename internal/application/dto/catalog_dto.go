package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest entrada para crear o editar una categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SupplierRequest entrada para crear o editar un proveedor.
type SupplierRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	ContactName string `json:"contact_name" validate:"max=100"`
	Phone       string `json:"phone" validate:"required,notblank,max=20"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
}

// ProductRequest entrada para crear o editar un producto (sobrescribe todos los campos editables).
type ProductRequest struct {
	Name        string           `json:"name" validate:"required,notblank,max=200"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0,lte=99999999.99,money"`
	Stock       int              `json:"stock" validate:"gte=0"`
	CategoryID  string           `json:"category_id" validate:"required,uuid"`
	SupplierID  string           `json:"supplier_id" validate:"omitempty,uuid"`
	Active      bool             `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}
