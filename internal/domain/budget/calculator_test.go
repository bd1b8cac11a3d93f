package budget_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahiry-dev/lalana-api/internal/domain/budget"
)

func TestCompute_FormulaPrecioNiveauSurface(t *testing.T) {
	calc := budget.NewCalculator(5000)

	got, err := calc.Compute(2, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100000).Equal(got),
		"5000 × 2 × 10 debe ser 100000, fue %s", got)
}

func TestCompute_SurfaceDecimal(t *testing.T) {
	calc := budget.NewCalculator(5000)

	got, err := calc.Compute(3, decimal.NewFromFloat(12.5))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(187500).Equal(got))
}

func TestCompute_NiveauFueraDeRango(t *testing.T) {
	calc := budget.NewCalculator(5000)

	_, err := calc.Compute(0, decimal.NewFromInt(10))
	assert.Error(t, err, "niveau 0 está fuera de 1..10")

	_, err = calc.Compute(11, decimal.NewFromInt(10))
	assert.Error(t, err, "niveau 11 está fuera de 1..10")
}

func TestCompute_SurfaceNegativa(t *testing.T) {
	calc := budget.NewCalculator(5000)

	_, err := calc.Compute(1, decimal.NewFromInt(-5))
	assert.Error(t, err)
}

func TestCompute_SurfaceCeroDaBudgetCero(t *testing.T) {
	calc := budget.NewCalculator(5000)

	got, err := calc.Compute(5, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestIsOverride(t *testing.T) {
	calc := budget.NewCalculator(5000)
	surface := decimal.NewFromInt(10)

	auto, err := calc.Compute(2, surface)
	require.NoError(t, err)

	assert.False(t, calc.IsOverride(auto, 2, surface),
		"el budget auto-calculado no es override")
	assert.True(t, calc.IsOverride(decimal.NewFromInt(999999), 2, surface),
		"un budget editado a mano es override")
}
