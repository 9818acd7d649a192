package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// attempt is one step of an ordered fallback chain for a UI action whose
// control varies between platform layouts.
type attempt struct {
	name string
	run  func(ctx context.Context) error
}

// runAttempts tries each attempt in order and stops at the first success.
// When every attempt fails, the returned error names them all so the
// fallback policy stays auditable from the task's error text.
func runAttempts(ctx context.Context, action string, attempts []attempt) error {
	failures := make([]string, 0, len(attempts))

	for _, att := range attempts {
		err := att.run(ctx)
		if err == nil {
			log.Debug().Str("action", action).Str("attempt", att.name).Msg("attempt succeeded")

			return nil
		}

		log.Debug().Err(err).Str("action", action).Str("attempt", att.name).Msg("attempt failed, trying next")
		failures = append(failures, fmt.Sprintf("%s: %v", att.name, err))
	}

	return fmt.Errorf("%s: all attempts failed (%s)", action, strings.Join(failures, "; "))
}
