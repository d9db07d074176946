package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Invariantes: Price >= 0 y Stock >= 0. La venta no descuenta Stock.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int
	CategoryID  string
	SupplierID  string // vacío si no tiene proveedor
	Active      bool
	CreatedAt   time.Time

	// Campos de lectura (JOIN); no se persisten.
	CategoryName string
	SupplierName string
}
