package validator

import (
	"fmt"
	"math"
	"sort"
	"time"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/pkg/timeframe"
)

// ValidateCandleSequence inspects an unordered batch of candles for one
// symbol and timeframe. It only ever produces warnings: duplicates, large
// price gaps and suspected missing periods complement record validation
// but never gate storage.
func (v *Validator) ValidateCandleSequence(candles []*v1.Candle) *v1.ValidationResult {
	result := v1.NewValidationResult()
	if len(candles) < 2 {
		return result
	}

	sorted := make([]*v1.Candle, len(candles))
	copy(sorted, candles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var duration time.Duration
	if tf, err := timeframe.Get(sorted[0].Timeframe); err == nil {
		duration = tf.Duration
	}

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]

		if curr.Timestamp.Equal(prev.Timestamp) {
			result.AddWarning(fmt.Sprintf("Duplicate timestamp at %s", curr.Timestamp.UTC().Format(time.RFC3339)))
			continue
		}

		if prev.Close > 0 {
			gapPct := math.Abs(curr.Open-prev.Close) / prev.Close * 100
			if gapPct > v.config.LargeGapPercent {
				result.AddWarning(fmt.Sprintf("Large price gap between candles: %.2f%%", gapPct))
			}
		}

		if duration > 0 {
			expected := prev.Timestamp.Add(duration)
			slack := time.Duration(float64(duration) * v.config.MissingPeriodSlackPercent / 100)
			drift := curr.Timestamp.Sub(expected)
			if drift < 0 {
				drift = -drift
			}
			if drift > slack {
				result.AddWarning(fmt.Sprintf(
					"Potential missing candle between %s and %s",
					prev.Timestamp.UTC().Format(time.RFC3339),
					curr.Timestamp.UTC().Format(time.RFC3339),
				))
			}
		}
	}

	return result
}
