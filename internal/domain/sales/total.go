// Package sales contiene las reglas puras de ventas: cálculo del total, ventanas de día y agregación.
package sales

import "github.com/shopspring/decimal"

// ComputeTotal calcula el total de una venta: cantidad × precio de venta vigente.
// Se evalúa una sola vez al guardar; no existe copia histórica del precio.
func ComputeTotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
