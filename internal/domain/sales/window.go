package sales

import "time"

// Window intervalo semiabierto [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains informa si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// LocalDayWindow política "día local semiabierto": [medianoche local, medianoche local + 1 día)
// en loc. La usan el dashboard y el reporte de ventas.
func LocalDayWindow(now time.Time, loc *time.Location) Window {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// CalendarDate política "igualdad de fecha": la fecha de now tomada en UTC, como YYYY-MM-DD.
// El repositorio la compara con la fecha de sold_at convertida a la zona local, por lo que
// cerca de medianoche ambas políticas pueden seleccionar conjuntos distintos.
// La usa el listado de ventas del día.
func CalendarDate(now time.Time) string {
	return now.UTC().Format(time.DateOnly)
}

// SameCalendarDate aplica la política de igualdad de fecha a un instante concreto.
func SameCalendarDate(soldAt time.Time, date string, loc *time.Location) bool {
	return soldAt.In(loc).Format(time.DateOnly) == date
}
