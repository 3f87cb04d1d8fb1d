package coder

import "fmt"

// DateStrategy selects how time.Time values are represented in containers.
type DateStrategy uint8

const (
	// DateSecondsSinceEpoch stores a float64 number of seconds since the Unix epoch.
	// For present-day dates a float64 keeps the instant to within a few hundred
	// nanoseconds, so a round trip is exact only to the microsecond.
	DateSecondsSinceEpoch DateStrategy = iota
	// DateMillisecondsSinceEpoch stores a float64 number of milliseconds since the
	// Unix epoch. It has the same float64 limit as DateSecondsSinceEpoch. Use
	// DateRFC3339 when nanoseconds must survive.
	DateMillisecondsSinceEpoch
	// DateRFC3339 stores an RFC 3339 string with nanosecond precision.
	DateRFC3339
)

var dateStrategyNames = [...]string{
	DateSecondsSinceEpoch:      "seconds",
	DateMillisecondsSinceEpoch: "millis",
	DateRFC3339:                "rfc3339",
}

func (s DateStrategy) String() string {
	if int(s) < len(dateStrategyNames) {
		return dateStrategyNames[s]
	}
	return "unknown"
}

// ParseDateStrategy accepts the names printed by DateStrategy.String.
func ParseDateStrategy(name string) (DateStrategy, error) {
	for i, n := range dateStrategyNames {
		if n == name {
			return DateStrategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown date strategy %q (want seconds, millis or rfc3339)", name)
}

// Options configures encoders and decoders.
type Options struct {
	// UserInfo is handed to EncodeTo and DecodeFrom implementations unchanged.
	UserInfo map[string]any

	DateStrategy DateStrategy
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		DateStrategy: DateSecondsSinceEpoch,
	}
}
