package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_AssessDataQuality(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	ctx := context.Background()

	t0 := time.UnixMilli(1700000100000).UTC()
	svc.now = func() time.Time { return t0.Add(4*time.Minute + 30*time.Second) }

	mocks.cache.EXPECT().
		SetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).Times(5)

	for i := range 5 {
		c := testCandle(t0.Add(time.Duration(i) * time.Minute))
		c.Open = c.Close // keep adjacent opens near prior closes
		assert.NoError(t, svc.HandleCandle(ctx, c))
	}

	report, err := svc.AssessDataQuality(ctx, "BTC/USDT", "1m")
	assert.NoError(t, err)

	// 5 of the 60 candles the 1h lookback expects
	assert.InDelta(t, 8.33, report.Completeness, 0.01)
	// contiguous, no duplicates or gaps
	assert.Equal(t, 100.0, report.Consistency)
	// newest candle sits on the current period boundary
	assert.Equal(t, 100.0, report.Freshness)
	assert.InDelta(t, (report.Completeness+report.Consistency+report.Freshness)/3, report.Overall, 0.0001)
	assert.Equal(t, 5, report.CandleCount)
}

func TestService_AssessDataQuality_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(t, ctrl)

	report, err := svc.AssessDataQuality(context.Background(), "UNSEEN", "1m")
	assert.NoError(t, err)
	assert.Equal(t, 0, report.CandleCount)
	assert.Equal(t, 0.0, report.Overall)
}

func TestService_AssessDataQuality_UnknownTimeframe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(t, ctrl)

	_, err := svc.AssessDataQuality(context.Background(), "BTC/USDT", "2h")
	assert.Error(t, err)
}

func TestService_AssessDataQuality_StaleData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	ctx := context.Background()

	t0 := time.UnixMilli(1700000100000).UTC()
	// two hours after the only candle: completeness and freshness collapse
	svc.now = func() time.Time { return t0.Add(2 * time.Hour) }

	mocks.cache.EXPECT().
		SetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	assert.NoError(t, svc.HandleCandle(ctx, testCandle(t0)))

	report, err := svc.AssessDataQuality(ctx, "BTC/USDT", "1m")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, report.Completeness)
	assert.Equal(t, 0.0, report.Freshness)
	assert.Equal(t, 100.0, report.Consistency)
}
