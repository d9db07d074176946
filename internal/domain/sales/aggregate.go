package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Summary resultado de la agregación por ventana.
type Summary struct {
	Records []*entity.Sale
	Total   decimal.Decimal
	Count   int
}

// Aggregate suma los totales almacenados (no los recalcula) y cuenta los registros.
func Aggregate(records []*entity.Sale) Summary {
	total := decimal.Zero
	for _, s := range records {
		total = total.Add(s.Total)
	}
	if records == nil {
		records = []*entity.Sale{}
	}
	return Summary{Records: records, Total: total, Count: len(records)}
}
