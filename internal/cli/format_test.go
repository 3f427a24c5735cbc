package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatGrouped(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{1234567.891, "1,234,567.89"},
		{-9876.5, "-9,876.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatGrouped(tc.in), "in=%v", tc.in)
	}
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1", groupThousands("1"))
	assert.Equal(t, "123", groupThousands("123"))
	assert.Equal(t, "1,234", groupThousands("1234"))
	assert.Equal(t, "12,345,678", groupThousands("12345678"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "71,500.00", FormatPrice(71500))
	assert.Equal(t, "10.00", FormatPrice(10))
	// Sub-10 prices keep four decimals.
	assert.Equal(t, "2.3456", FormatPrice(2.3456))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+1.50%", FormatPercent(1.5))
	assert.Equal(t, "-2.25%", FormatPercent(-2.25))
	assert.Equal(t, "0.00%", FormatPercent(0))
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+2.00 (+1.96%)", FormatChange(2, 1.96))
	assert.Equal(t, "-3.50 (-2.10%)", FormatChange(-3.5, -2.1))
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "2.50B", FormatVolume(2_500_000_000))
	assert.Equal(t, "1.20M", FormatVolume(1_200_000))
	assert.Equal(t, "15.00K", FormatVolume(15_000))
	assert.Equal(t, "999", FormatVolume(999))
}

func TestFormatConfidenceAndRiskReward(t *testing.T) {
	assert.Equal(t, "87%", FormatConfidence(86.7))
	assert.Equal(t, "1:2.50", FormatRiskReward(2.5))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "2m 5s", FormatDuration(125*time.Second))
	assert.Equal(t, "1h 30m", FormatDuration(90*time.Minute))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "long st...", TruncateString("long string here", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
	assert.Equal(t, "abcdef", PadLeft("abcdef", 3))
}
