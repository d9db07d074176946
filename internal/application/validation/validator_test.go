package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/validation"
	"github.com/jhoicas/tienda-api/internal/domain"
)

type sample struct {
	Name  string          `json:"name" validate:"required,max=5"`
	Email string          `json:"email" validate:"omitempty,email"`
	Price decimal.Decimal `json:"price" validate:"gte=0,money"`
	Qty   int             `json:"quantity" validate:"min=1"`
}

func TestStruct_Valido(t *testing.T) {
	err := validation.Struct(sample{Name: "Cola", Price: decimal.RequireFromString("1.50"), Qty: 1})
	assert.NoError(t, err)
}

func TestStruct_ErroresPorCampoConNombreJSON(t *testing.T) {
	err := validation.Struct(sample{Email: "no-es-correo", Price: decimal.RequireFromString("-1"), Qty: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Este campo es obligatorio.", verr.Fields["name"])
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "price")
	assert.Contains(t, verr.Fields, "quantity")
}

func TestStruct_MasDeDosDecimales(t *testing.T) {
	err := validation.Struct(sample{Name: "Cola", Price: decimal.RequireFromString("1.505"), Qty: 1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Asegúrese de que no haya más de 2 decimales.", verr.Fields["price"])
}

func TestStruct_TextoSoloEspaciosEsObligatorio(t *testing.T) {
	type named struct {
		Name string `json:"first_name" validate:"required,notblank"`
	}
	assert.NoError(t, validation.Struct(named{Name: " Ana "}))

	err := validation.Struct(named{Name: " \t "})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Este campo es obligatorio.", verr.Fields["first_name"])
}

func TestStruct_PrecioPunteroObligatorio(t *testing.T) {
	type priced struct {
		Price *decimal.Decimal `json:"price" validate:"required,gte=0,money"`
	}
	zero := decimal.Zero
	assert.NoError(t, validation.Struct(priced{Price: &zero}))

	err := validation.Struct(priced{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Este campo es obligatorio.", verr.Fields["price"])

	tooFine := decimal.RequireFromString("2.999")
	err = validation.Struct(priced{Price: &tooFine})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Asegúrese de que no haya más de 2 decimales.", verr.Fields["price"])
}
