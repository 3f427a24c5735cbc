package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksignal/internal/analysis"
	"stocksignal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetCandles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, 5)
	for i := range candles {
		candles[i] = models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      100 + float64(i),
			High:      101 + float64(i),
			Low:       99 + float64(i),
			Close:     100.5 + float64(i),
			Volume:    int64(1000 * (i + 1)),
		}
	}
	require.NoError(t, s.SaveCandles(ctx, "AAPL", candles))

	got, err := s.GetCandles(ctx, "AAPL", 0)
	require.NoError(t, err)
	require.Len(t, got, 5)

	// Ascending order regardless of query direction.
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].Timestamp.After(got[i-1].Timestamp))
	}
	assert.InDelta(t, 100.5, got[0].Close, 0.0001)
	assert.Equal(t, int64(5000), got[4].Volume)

	// Limit returns only the most recent bars.
	tail, err := s.GetCandles(ctx, "AAPL", 2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.InDelta(t, 103.5, tail[0].Close, 0.0001)
	assert.InDelta(t, 104.5, tail[1].Close, 0.0001)
}

func TestSaveCandles_UpsertDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := []models.Candle{{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}}
	require.NoError(t, s.SaveCandles(ctx, "AAPL", first))

	revised := []models.Candle{{Timestamp: ts, Open: 100, High: 102, Low: 99, Close: 101.5, Volume: 2000}}
	require.NoError(t, s.SaveCandles(ctx, "AAPL", revised))

	got, err := s.GetCandles(ctx, "AAPL", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 101.5, got[0].Close, 0.0001)
}

func TestGetCandles_UnknownSymbolIsEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetCandles(context.Background(), "NOPE", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWatchlistLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddToWatchlist(ctx, "AAPL", ""))
	require.NoError(t, s.AddToWatchlist(ctx, "MSFT", "default"))
	require.NoError(t, s.AddToWatchlist(ctx, "005930", "kr"))

	// Duplicate adds are ignored.
	require.NoError(t, s.AddToWatchlist(ctx, "AAPL", "default"))

	symbols, err := s.GetWatchlist(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, symbols)

	lists, err := s.GetAllWatchlists(ctx)
	require.NoError(t, err)
	assert.Len(t, lists, 2)
	assert.Equal(t, []string{"005930"}, lists["kr"])

	require.NoError(t, s.RemoveFromWatchlist(ctx, "AAPL", "default"))
	symbols, err = s.GetWatchlist(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, symbols)
}

func TestScanResultsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	scannedAt := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	records := []ScanRecord{
		{Symbol: "AAA", Price: 100, ChangeRate: 1.5, Score: 72, Signal: analysis.Buy, ScannedAt: scannedAt},
		{Symbol: "BBB", Price: 50, ChangeRate: -0.5, Score: 85, Signal: analysis.StrongBuy, ScannedAt: scannedAt},
		{Symbol: "CCC", Price: 20, ChangeRate: 0.1, Score: 41, Signal: analysis.Hold, ScannedAt: scannedAt},
	}
	require.NoError(t, s.SaveScanResults(ctx, records))

	got, err := s.GetLatestScanResults(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Best score first within the same run.
	assert.Equal(t, "BBB", got[0].Symbol)
	assert.Equal(t, analysis.StrongBuy, got[0].Signal)
	assert.InDelta(t, 85, got[0].Score, 0.0001)
	assert.Equal(t, "AAA", got[1].Symbol)
}

func TestSaveScanResults_EmptyIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.SaveScanResults(context.Background(), nil))
}

func TestSignalHistoryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := &SignalRecord{
		Symbol:         "AAPL",
		Signal:         analysis.Buy,
		Confidence:     68.5,
		CompositeScore: 68.5,
		TechnicalScore: 70,
		Reasons:        []string{"RSI recovering", "Volume surge"},
	}
	require.NoError(t, s.SaveSignal(ctx, record))

	later := &SignalRecord{
		Symbol:         "AAPL",
		Signal:         analysis.StrongBuy,
		Confidence:     88,
		CompositeScore: 88,
		TechnicalScore: 90,
		CreatedAt:      time.Now().Add(time.Hour),
	}
	require.NoError(t, s.SaveSignal(ctx, later))

	got, err := s.GetSignals(ctx, "AAPL", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, analysis.StrongBuy, got[0].Signal)
	assert.Empty(t, got[0].Reasons)
	assert.Equal(t, analysis.Buy, got[1].Signal)
	assert.Equal(t, []string{"RSI recovering", "Volume surge"}, got[1].Reasons)
	assert.InDelta(t, 68.5, got[1].Confidence, 0.0001)
	assert.False(t, got[1].CreatedAt.IsZero())

	other, err := s.GetSignals(ctx, "MSFT", 0)
	require.NoError(t, err)
	assert.Empty(t, other)
}
