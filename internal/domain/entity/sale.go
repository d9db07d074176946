package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta de un producto a un cliente.
// Total se calcula una sola vez al guardar (cantidad × precio vigente del producto) y no se recalcula al leer.
type Sale struct {
	ID         string
	CustomerID string
	ProductID  string
	Quantity   int
	Total      decimal.Decimal
	SoldAt     time.Time
	SellerID   string // identidad del personal que registró la venta (vacío si no aplica)

	// Campos de lectura (JOIN); no se persisten.
	CustomerName   string
	ProductName    string
	SellerUsername string
}
