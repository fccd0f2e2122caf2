package discovery

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Options configures a discovery run. The zero value filters nothing and
// enriches every candidate.
type Options struct {
	// MinSubscribers drops channels below this subscriber count.
	MinSubscribers int64

	// Country keeps only channels declaring this ISO 3166-1 alpha-2 code,
	// compared case-insensitively. Empty disables the filter. Channels
	// without a declared country never match a configured one.
	Country string

	// MaxChannels caps how many filtered candidates are enriched.
	// Zero means no cap.
	MaxChannels int

	// Logger receives run progress and skip diagnostics. Defaults to the
	// logrus standard logger.
	Logger *logrus.Logger
}

// Validate reports configuration errors before any API quota is spent.
func (o Options) Validate() error {
	if o.MinSubscribers < 0 {
		return fmt.Errorf("minimum subscribers must be non-negative, got %d", o.MinSubscribers)
	}
	if o.Country != "" && !isCountryCode(o.Country) {
		return fmt.Errorf("country must be a 2-letter code, got %q", o.Country)
	}
	if o.MaxChannels < 0 {
		return fmt.Errorf("max channels must be non-negative, got %d", o.MaxChannels)
	}
	return nil
}

func isCountryCode(c string) bool {
	if len(c) != 2 {
		return false
	}
	for _, r := range c {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
