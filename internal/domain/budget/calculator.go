package budget

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
)

// Calculator calcula el budget de reparación de un signalement.
//
// Fórmula: budget = precioPorM2 × niveau × surfaceM2. Un budget editado a mano
// por el manager rompe esta igualdad y se acepta como override.
type Calculator struct {
	pricePerM2 decimal.Decimal
}

// NewCalculator construye el calculador con el precio por m² (Ariary).
func NewCalculator(pricePerM2 int64) *Calculator {
	return &Calculator{pricePerM2: decimal.NewFromInt(pricePerM2)}
}

// Compute calcula el budget. Retorna error si el niveau está fuera de 1..10
// o la superficie es negativa.
func (c *Calculator) Compute(niveau int, surfaceM2 decimal.Decimal) (decimal.Decimal, error) {
	if niveau < entity.NiveauMin || niveau > entity.NiveauMax {
		return decimal.Zero, fmt.Errorf("niveau %d fuera de rango [%d..%d]", niveau, entity.NiveauMin, entity.NiveauMax)
	}
	if surfaceM2.IsNegative() {
		return decimal.Zero, fmt.Errorf("surface negativa: %s", surfaceM2)
	}
	return c.pricePerM2.Mul(decimal.NewFromInt(int64(niveau))).Mul(surfaceM2), nil
}

// IsOverride indica si un budget persistido difiere del auto-calculado
// (es decir, fue editado manualmente).
func (c *Calculator) IsOverride(budget decimal.Decimal, niveau int, surfaceM2 decimal.Decimal) bool {
	computed, err := c.Compute(niveau, surfaceM2)
	if err != nil {
		return true
	}
	return !budget.Equal(computed)
}

// PricePerM2 expone el precio configurado (para respuestas informativas).
func (c *Calculator) PricePerM2() decimal.Decimal {
	return c.pricePerM2
}
