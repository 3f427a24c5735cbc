package indicators

import (
	"stocksignal/internal/models"
)

// VolumeRatio returns the ratio of the latest bar's volume to the mean
// volume of the preceding period bars. Returns an error when there is not
// enough history or the average volume is zero.
func VolumeRatio(candles []models.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	n := len(candles)
	if n < period+1 {
		return 0, ErrInsufficientData
	}

	var avg float64
	for i := n - period - 1; i < n-1; i++ {
		avg += float64(candles[i].Volume)
	}
	avg /= float64(period)

	if avg == 0 {
		return 0, ErrInsufficientData
	}

	return float64(candles[n-1].Volume) / avg, nil
}
