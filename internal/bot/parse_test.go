package bot

import (
	"testing"

	"hw-quote/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalc(t *testing.T) {
	in, err := ParseCalc("cpu_1*2, ram_3 discount=vip minus=500")
	require.NoError(t, err)

	assert.Equal(t, []domain.Selection{
		{Category: "cpu", ItemID: "cpu_1", Quantity: 2},
		{Category: "ram", ItemID: "ram_3", Quantity: 1},
	}, in.Selections)
	assert.Equal(t, "vip", in.DiscountID)
	assert.Equal(t, 500.0, in.SpecialReduction)
}

func TestParseCalc_DashedCategory(t *testing.T) {
	in, err := ParseCalc("power_supply_2")
	require.NoError(t, err)
	assert.Equal(t, "power_supply", in.Selections[0].Category)
}

func TestParseCalc_Errors(t *testing.T) {
	for _, args := range []string{
		"",
		"   ",
		"cpu_1*two",
		"cpu",
		"cpu_1 minus=lots",
		"cpu_1 minus=NaN",
		"cpu_1 minus=-Infinity",
		"cpu_1*Inf",
		"cpu_1*nan",
	} {
		_, err := ParseCalc(args)
		assert.Error(t, err, args)
	}
}

func TestSplitCommand(t *testing.T) {
	cmd, args := SplitCommand("  /Calc@QuoteBot cpu_1*2  ram_1 ")
	assert.Equal(t, "/calc", cmd)
	assert.Equal(t, "cpu_1*2  ram_1", args)

	cmd, args = SplitCommand("/help")
	assert.Equal(t, "/help", cmd)
	assert.Empty(t, args)
}

func TestFixEncoding(t *testing.T) {
	assert.Equal(t, "Привет", FixEncoding("Привет"))
	// "Тест" в Windows-1251
	assert.Equal(t, "Тест", FixEncoding(string([]byte{0xD2, 0xE5, 0xF1, 0xF2})))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "cpu\\_1 \\* 2 \\`x\\` \\[a]", escapeMarkdown("cpu_1 * 2 `x` [a]"))
}
