package timeframe

import (
	"fmt"
	"time"
)

// Timeframe represents a fixed candle granularity.
type Timeframe struct {
	Name     string
	Duration time.Duration
}

// Supported timeframes configuration
var (
	Timeframe1m  = Timeframe{Name: "1m", Duration: time.Minute}
	Timeframe5m  = Timeframe{Name: "5m", Duration: 5 * time.Minute}
	Timeframe15m = Timeframe{Name: "15m", Duration: 15 * time.Minute}
	Timeframe30m = Timeframe{Name: "30m", Duration: 30 * time.Minute}
	Timeframe1h  = Timeframe{Name: "1h", Duration: time.Hour}
	Timeframe4h  = Timeframe{Name: "4h", Duration: 4 * time.Hour}
	Timeframe1d  = Timeframe{Name: "1d", Duration: 24 * time.Hour}
	Timeframe1w  = Timeframe{Name: "1w", Duration: 7 * 24 * time.Hour}
	Timeframe1M  = Timeframe{Name: "1M", Duration: 30 * 24 * time.Hour}
)

// All supported timeframes, smallest first.
var AllTimeframes = []Timeframe{
	Timeframe1m, Timeframe5m, Timeframe15m, Timeframe30m,
	Timeframe1h, Timeframe4h, Timeframe1d, Timeframe1w, Timeframe1M,
}

// Timeframe registry for lookup
var registry = make(map[string]Timeframe)

func init() {
	for _, tf := range AllTimeframes {
		registry[tf.Name] = tf
	}
}

// Get returns a timeframe by name.
func Get(name string) (Timeframe, error) {
	tf, exists := registry[name]
	if !exists {
		return Timeframe{}, fmt.Errorf("unsupported timeframe: %s", name)
	}
	return tf, nil
}

// IsValid checks if timeframe name is supported.
func IsValid(name string) bool {
	_, exists := registry[name]
	return exists
}

// Names returns all supported timeframe names.
func Names() []string {
	names := make([]string, 0, len(AllTimeframes))
	for _, tf := range AllTimeframes {
		names = append(names, tf.Name)
	}
	return names
}

// Align floors a timestamp to the start of its period. Alignment is
// epoch based (floor of unix milliseconds over the period duration),
// not calendar based, so weekly and monthly buckets stay consistent
// with the incremental aggregation math.
func (t Timeframe) Align(ts time.Time) time.Time {
	durMs := t.Duration.Milliseconds()
	return time.UnixMilli((ts.UnixMilli() / durMs) * durMs).UTC()
}

// BucketRange returns the start and end time of the period containing ts.
func (t Timeframe) BucketRange(ts time.Time) (start, end time.Time) {
	start = t.Align(ts)
	end = start.Add(t.Duration)
	return start, end
}

// InSameBucket checks if two timestamps fall within the same period.
func (t Timeframe) InSameBucket(a, b time.Time) bool {
	return t.Align(a).Equal(t.Align(b))
}

// CanAggregate reports whether source candles can be rolled up into the
// target timeframe: the target period must be strictly larger and evenly
// divisible by the source period.
func CanAggregate(source, target Timeframe) bool {
	if target.Duration <= source.Duration {
		return false
	}
	return target.Duration%source.Duration == 0
}

// CanAggregateNames is the name-based variant of CanAggregate. Unknown
// names never aggregate.
func CanAggregateNames(source, target string) bool {
	src, err := Get(source)
	if err != nil {
		return false
	}
	dst, err := Get(target)
	if err != nil {
		return false
	}
	return CanAggregate(src, dst)
}

// LargerThan returns all supported timeframes with a duration strictly
// greater than tf, smallest first.
func LargerThan(tf Timeframe) []Timeframe {
	larger := make([]Timeframe, 0, len(AllTimeframes))
	for _, candidate := range AllTimeframes {
		if candidate.Duration > tf.Duration {
			larger = append(larger, candidate)
		}
	}
	return larger
}
