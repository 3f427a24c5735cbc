package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/models"
)

// csvDate parses the date column of candle files.
type csvDate struct {
	time.Time
}

func (d *csvDate) UnmarshalCSV(value string) error {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d csvDate) MarshalCSV() (string, error) {
	return d.Format("2006-01-02"), nil
}

// csvCandle is one row of a candle file.
type csvCandle struct {
	Date   csvDate `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume int64   `csv:"volume"`
}

// CSVProvider reads daily candles from <dir>/<symbol>.csv files with a
// date,open,high,low,close,volume header.
type CSVProvider struct {
	dir string
}

// NewCSVProvider creates a provider rooted at the given directory.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

// GetCandles implements Provider.
func (p *CSVProvider) GetCandles(ctx context.Context, symbol string, limit int) ([]models.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(p.dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewDataError("candles", symbol, "no data file", apperrors.ErrSymbolNotFound)
		}
		return nil, apperrors.NewDataError("candles", symbol, "open data file", err)
	}
	defer f.Close()

	var rows []csvCandle
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, apperrors.NewDataError("candles", symbol, "parse data file", err)
	}

	candles := make([]models.Candle, 0, len(rows))
	for _, row := range rows {
		candles = append(candles, models.Candle{
			Timestamp: row.Date.Time,
			Open:      row.Open,
			High:      row.High,
			Low:       row.Low,
			Close:     row.Close,
			Volume:    row.Volume,
		})
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

// GetQuote implements Provider by deriving the quote from the last two
// candles on file.
func (p *CSVProvider) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	candles, err := p.GetCandles(ctx, symbol, 2)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, apperrors.NewDataError("quote", symbol, "empty data file", apperrors.ErrDataNotFound)
	}

	last := candles[len(candles)-1]
	quote := &models.Quote{
		Symbol:    symbol,
		Price:     last.Close,
		Volume:    last.Volume,
		Timestamp: last.Timestamp,
	}
	if len(candles) == 2 && candles[0].Close > 0 {
		quote.Change = last.Close - candles[0].Close
		quote.ChangePercent = quote.Change / candles[0].Close * 100
	}
	return quote, nil
}
