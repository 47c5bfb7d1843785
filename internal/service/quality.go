package service

import (
	"context"
	"time"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/pkg/errors"
	"github.com/tradesys/market-data-engine/pkg/timeframe"
)

// QualityReport is a diagnostic score for one (symbol, timeframe) stream.
// It never gates ingestion.
type QualityReport struct {
	Symbol       string    `json:"symbol"`
	Timeframe    string    `json:"timeframe"`
	Completeness float64   `json:"completeness"`
	Consistency  float64   `json:"consistency"`
	Freshness    float64   `json:"freshness"`
	Overall      float64   `json:"overall"`
	CandleCount  int       `json:"candleCount"`
	Timestamp    time.Time `json:"timestamp"`
}

// AssessDataQuality scores the buffered candles for a symbol and
// timeframe. Completeness compares the candle count against the expected
// count over the lookback window, consistency deducts ten points per
// sequence finding, freshness measures the lag of the newest candle
// against the current period boundary. Overall is the unweighted average.
func (s *Service) AssessDataQuality(ctx context.Context, symbol, timeframeName string) (*QualityReport, error) {
	tf, err := timeframe.Get(timeframeName)
	if err != nil {
		return nil, errors.NewErrorDetails("Unknown timeframe", string(errors.GeneralBadRequestError), timeframeName)
	}

	now := s.now()
	candles := s.aggregator.GetCandles(symbol, timeframeName, 0)

	report := &QualityReport{
		Symbol:      symbol,
		Timeframe:   timeframeName,
		CandleCount: len(candles),
		Timestamp:   now,
	}

	if len(candles) == 0 {
		return report, nil
	}

	report.Completeness = s.completeness(candles, tf, now)
	report.Consistency = s.consistency(candles)
	report.Freshness = s.freshness(candles, tf, now)
	report.Overall = (report.Completeness + report.Consistency + report.Freshness) / 3

	return report, nil
}

func (s *Service) completeness(candles []*v1.Candle, tf timeframe.Timeframe, now time.Time) float64 {
	expected := float64(s.config.QualityLookback / tf.Duration)
	if expected <= 0 {
		return 100
	}

	windowStart := now.Add(-s.config.QualityLookback)
	actual := 0
	for _, c := range candles {
		if !c.Timestamp.Before(windowStart) {
			actual++
		}
	}

	return clampScore(float64(actual) / expected * 100)
}

func (s *Service) consistency(candles []*v1.Candle) float64 {
	result := s.validator.ValidateCandleSequence(candles)
	findings := len(result.Errors) + len(result.Warnings)
	return clampScore(100 - 10*float64(findings))
}

func (s *Service) freshness(candles []*v1.Candle, tf timeframe.Timeframe, now time.Time) float64 {
	latest := candles[len(candles)-1].Timestamp
	boundary := tf.Align(now)
	if !latest.Before(boundary) {
		return 100
	}

	lag := boundary.Sub(latest)
	return clampScore(100 - float64(lag)/float64(tf.Duration)*100)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
