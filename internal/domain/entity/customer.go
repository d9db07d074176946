package entity

import "time"

// Customer representa un cliente de la tienda.
// UserID enlaza con la identidad creada cuando el personal registra al cliente (vacío si no existe).
type Customer struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Address      string
	RegisteredAt time.Time
	UserID       string
}

// FullName devuelve "nombre apellido".
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
