package entity

// Supplier representa un proveedor de productos.
type Supplier struct {
	ID          string
	Name        string
	ContactName string // opcional
	Phone       string
}
