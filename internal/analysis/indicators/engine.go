// Package indicators provides technical indicator calculations with parallel processing.
package indicators

import (
	"context"
	"fmt"
	"sync"

	"stocksignal/internal/models"
)

// Indicator defines the interface for single-value technical indicators.
type Indicator interface {
	Name() string
	Calculate(candles []models.Candle) ([]float64, error)
	Period() int
}

// MultiValueIndicator defines the interface for indicators that return multiple values.
type MultiValueIndicator interface {
	Name() string
	Calculate(candles []models.Candle) (map[string][]float64, error)
	Period() int
}

// Engine provides parallel indicator calculation using a worker pool.
type Engine struct {
	workers     int
	indicators  map[string]Indicator
	multiIndics map[string]MultiValueIndicator
	mu          sync.RWMutex
}

// NewEngine creates a new indicator engine with the specified number of workers.
func NewEngine(workers int) *Engine {
	if workers <= 0 {
		workers = 4
	}
	return &Engine{
		workers:     workers,
		indicators:  make(map[string]Indicator),
		multiIndics: make(map[string]MultiValueIndicator),
	}
}

// NewDefaultEngine creates an engine pre-registered with the indicator set
// used by the technical analysis pipeline: RSI(14), SMA(5/20/60),
// EMA(12/26), ATR(14), simplified MACD(12,26) and Bollinger(20,2).
func NewDefaultEngine(workers int) *Engine {
	e := NewEngine(workers)
	e.RegisterIndicator(NewRSI(14))
	e.RegisterIndicator(NewSMA(5))
	e.RegisterIndicator(NewSMA(20))
	e.RegisterIndicator(NewSMA(60))
	e.RegisterIndicator(NewEMA(12))
	e.RegisterIndicator(NewEMA(26))
	e.RegisterIndicator(NewATR(14))
	e.RegisterMultiIndicator(NewMACD(12, 26))
	e.RegisterMultiIndicator(NewBollingerBands(20, 2.0))
	return e
}

// RegisterIndicator registers a single-value indicator.
func (e *Engine) RegisterIndicator(ind Indicator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.indicators[ind.Name()] = ind
}

// RegisterMultiIndicator registers a multi-value indicator.
func (e *Engine) RegisterMultiIndicator(ind MultiValueIndicator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.multiIndics[ind.Name()] = ind
}

// CalculateAll calculates all registered indicators in parallel. Indicators
// failing on the given series (too short, for example) are simply absent
// from the result maps.
func (e *Engine) CalculateAll(ctx context.Context, candles []models.Candle) (map[string][]float64, map[string]map[string][]float64, error) {
	e.mu.RLock()
	jobs := make([]func(), 0, len(e.indicators)+len(e.multiIndics))

	singleResults := make(map[string][]float64)
	multiResults := make(map[string]map[string][]float64)
	var mu sync.Mutex

	for _, ind := range e.indicators {
		ind := ind
		jobs = append(jobs, func() {
			values, err := ind.Calculate(candles)
			if err != nil {
				return
			}
			mu.Lock()
			singleResults[ind.Name()] = values
			mu.Unlock()
		})
	}
	for _, ind := range e.multiIndics {
		ind := ind
		jobs = append(jobs, func() {
			values, err := ind.Calculate(candles)
			if err != nil {
				return
			}
			mu.Lock()
			multiResults[ind.Name()] = values
			mu.Unlock()
		})
	}
	e.mu.RUnlock()

	work := make(chan func(), len(jobs))
	var wg sync.WaitGroup

	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range work {
				select {
				case <-ctx.Done():
					return
				default:
					job()
				}
			}
		}()
	}

	for _, job := range jobs {
		work <- job
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return singleResults, multiResults, nil
}

// Calculate calculates a specific indicator by name.
func (e *Engine) Calculate(ctx context.Context, name string, candles []models.Candle) ([]float64, error) {
	e.mu.RLock()
	ind, ok := e.indicators[name]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("indicator %s not found", name)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return ind.Calculate(candles)
	}
}

// CalculateMulti calculates a specific multi-value indicator by name.
func (e *Engine) CalculateMulti(ctx context.Context, name string, candles []models.Candle) (map[string][]float64, error) {
	e.mu.RLock()
	ind, ok := e.multiIndics[name]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("multi-value indicator %s not found", name)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return ind.Calculate(candles)
	}
}
