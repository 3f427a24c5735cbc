package indicators

import (
	"fmt"

	"stocksignal/internal/models"
)

// SMA calculates Simple Moving Average.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

func (s *SMA) Name() string {
	return fmt.Sprintf("SMA_%d", s.period)
}

func (s *SMA) Period() int {
	return s.period
}

func (s *SMA) Calculate(candles []models.Candle) ([]float64, error) {
	if s.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(candles) < s.period {
		return nil, ErrInsufficientData
	}

	result := make([]float64, len(candles))
	closes := closePrices(candles)

	for i := s.period - 1; i < len(candles); i++ {
		result[i] = mean(closes[i-s.period+1 : i+1])
	}

	return result, nil
}

// EMA calculates a batch-seeded exponential moving average: the recurrence
// is seeded with the first element of the slice and recomputed over the
// whole slice on every call. Every output index is defined, including the
// warm-up region. Use StandardEMA for the SMA-seeded textbook variant.
type EMA struct {
	period int
}

// NewEMA creates a new batch-seeded EMA indicator.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

func (e *EMA) Name() string {
	return fmt.Sprintf("EMA_%d", e.period)
}

func (e *EMA) Period() int {
	return e.period
}

func (e *EMA) Calculate(candles []models.Candle) ([]float64, error) {
	if e.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(candles) == 0 {
		return nil, ErrInsufficientData
	}
	return SeededEMA(closePrices(candles), e.period), nil
}

// SeededEMA computes the batch-seeded EMA over raw values: result[0] is the
// first value, then result[i] = value*k + result[i-1]*(1-k) with
// k = 2/(period+1).
func SeededEMA(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}

	result := make([]float64, len(values))
	k := 2.0 / float64(period+1)

	result[0] = values[0]
	for i := 1; i < len(values); i++ {
		result[i] = values[i]*k + result[i-1]*(1-k)
	}

	return result
}

// StandardEMA is the textbook SMA-seeded EMA, available as an explicit
// opt-in. It is undefined (zero) before index period-1.
type StandardEMA struct {
	period int
}

// NewStandardEMA creates a new SMA-seeded EMA indicator.
func NewStandardEMA(period int) *StandardEMA {
	return &StandardEMA{period: period}
}

func (e *StandardEMA) Name() string {
	return fmt.Sprintf("StdEMA_%d", e.period)
}

func (e *StandardEMA) Period() int {
	return e.period
}

func (e *StandardEMA) Calculate(candles []models.Candle) ([]float64, error) {
	if e.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(candles) < e.period {
		return nil, ErrInsufficientData
	}

	closes := closePrices(candles)
	result := make([]float64, len(closes))
	multiplier := 2.0 / float64(e.period+1)

	result[e.period-1] = mean(closes[:e.period])
	for i := e.period; i < len(closes); i++ {
		result[i] = (closes[i]-result[i-1])*multiplier + result[i-1]
	}

	return result, nil
}

// MACD calculates the simplified MACD used throughout the scoring and
// timing paths: line = EMA12 - EMA26 over batch-seeded EMAs, and the
// signal and histogram series are fixed scalar fractions of the line
// (line*0.8 and line*0.2) rather than an independently smoothed series.
// Use StandardMACD for the 9-period-signal variant.
type MACD struct {
	fastPeriod int
	slowPeriod int
}

// NewMACD creates a new simplified MACD indicator with the given periods.
func NewMACD(fast, slow int) *MACD {
	return &MACD{
		fastPeriod: fast,
		slowPeriod: slow,
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD_%d_%d", m.fastPeriod, m.slowPeriod)
}

func (m *MACD) Period() int {
	return m.slowPeriod
}

func (m *MACD) Calculate(candles []models.Candle) (map[string][]float64, error) {
	if m.fastPeriod <= 0 || m.slowPeriod <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(candles) < m.slowPeriod {
		return nil, ErrInsufficientData
	}

	closes := closePrices(candles)
	fastEMA := SeededEMA(closes, m.fastPeriod)
	slowEMA := SeededEMA(closes, m.slowPeriod)

	n := len(candles)
	macdLine := make([]float64, n)
	signalLine := make([]float64, n)
	histogram := make([]float64, n)

	for i := 0; i < n; i++ {
		macdLine[i] = fastEMA[i] - slowEMA[i]
		signalLine[i] = macdLine[i] * 0.8
		histogram[i] = macdLine[i] * 0.2
	}

	return map[string][]float64{
		"macd":      macdLine,
		"signal":    signalLine,
		"histogram": histogram,
	}, nil
}

// StandardMACD computes MACD with a true 9-period EMA signal line,
// available as an explicit opt-in alongside the simplified variant.
type StandardMACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewStandardMACD creates a standard MACD indicator (typically 12, 26, 9).
func NewStandardMACD(fast, slow, signal int) *StandardMACD {
	return &StandardMACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

func (m *StandardMACD) Name() string {
	return fmt.Sprintf("StdMACD_%d_%d_%d", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

func (m *StandardMACD) Period() int {
	return m.slowPeriod + m.signalPeriod - 1
}

func (m *StandardMACD) Calculate(candles []models.Candle) (map[string][]float64, error) {
	if m.fastPeriod <= 0 || m.slowPeriod <= 0 || m.signalPeriod <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(candles) < m.Period() {
		return nil, ErrInsufficientData
	}

	closes := closePrices(candles)
	fastEMA := SeededEMA(closes, m.fastPeriod)
	slowEMA := SeededEMA(closes, m.slowPeriod)

	n := len(candles)
	macdLine := make([]float64, n)
	for i := 0; i < n; i++ {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := SeededEMA(macdLine, m.signalPeriod)

	histogram := make([]float64, n)
	for i := 0; i < n; i++ {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	return map[string][]float64{
		"macd":      macdLine,
		"signal":    signalLine,
		"histogram": histogram,
	}, nil
}
