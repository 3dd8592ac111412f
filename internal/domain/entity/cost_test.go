package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func usd(s string) CostFigure {
	return CostFigure{Amount: dec(s), Currency: "USD"}
}

func TestCompareExactFormula(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		previous  string
		percent   string
		direction Direction
	}{
		{"half up", "150", "100", "50", DirectionUp},
		{"half down", "50", "100", "-50", DirectionDown},
		{"all spend gone", "0", "100", "-100", DirectionDown},
		{"tenth of a percent", "1001", "1000", "0.1", DirectionUp},
		{"equal figures", "123.45", "123.45", "0", DirectionFlat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := Compare(usd(tt.current), usd(tt.previous))
			assert.True(t, cmp.PercentChange.Equal(dec(tt.percent)),
				"got %s, want %s", cmp.PercentChange, tt.percent)
			assert.Equal(t, tt.direction, cmp.Direction)
			assert.False(t, cmp.NewSpend)
		})
	}
}

func TestCompareMonthToDateScenario(t *testing.T) {
	cmp := Compare(usd("1234.56"), usd("1071.23"))
	assert.Equal(t, "15.25", cmp.PercentChange.Round(2).String())
	assert.Equal(t, DirectionUp, cmp.Direction)
}

func TestCompareForecastScenario(t *testing.T) {
	cmp := Compare(usd("3456.78"), usd("3180.45"))
	assert.Equal(t, "8.69", cmp.PercentChange.Round(2).String())
	assert.Equal(t, DirectionUp, cmp.Direction)
}

func TestCompareZeroBaseline(t *testing.T) {
	cmp := Compare(usd("0"), usd("0"))
	assert.Equal(t, DirectionFlat, cmp.Direction)
	assert.True(t, cmp.PercentChange.IsZero())
	assert.False(t, cmp.NewSpend)
}

func TestCompareNewSpend(t *testing.T) {
	cmp := Compare(usd("100"), usd("0"))
	assert.True(t, cmp.NewSpend)
	assert.Equal(t, DirectionUp, cmp.Direction)
	assert.True(t, cmp.PercentChange.IsZero())
}

func TestCompareCreditAgainstZeroBaseline(t *testing.T) {
	cmp := Compare(usd("-12.50"), usd("0"))
	assert.True(t, cmp.NewSpend)
	assert.Equal(t, DirectionDown, cmp.Direction)
}

func TestComparePreservesFigures(t *testing.T) {
	current, previous := usd("10.01"), usd("9.99")
	cmp := Compare(current, previous)
	assert.Equal(t, current, cmp.Current)
	assert.Equal(t, previous, cmp.Previous)
}

func TestDirectionStrings(t *testing.T) {
	assert.Equal(t, "up", DirectionUp.String())
	assert.Equal(t, "down", DirectionDown.String())
	assert.Equal(t, "flat", DirectionFlat.String())

	text, err := DirectionUp.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "up", string(text))
}

func TestDirectionTextRoundTrip(t *testing.T) {
	for _, d := range []Direction{DirectionFlat, DirectionUp, DirectionDown} {
		text, err := d.MarshalText()
		assert.NoError(t, err)

		var decoded Direction
		assert.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, d, decoded)
	}

	var d Direction
	assert.Error(t, d.UnmarshalText([]byte("sideways")))
}

func TestZeroCost(t *testing.T) {
	z := ZeroCost("USD")
	assert.True(t, z.Amount.IsZero())
	assert.Equal(t, "USD", z.Currency)
}
