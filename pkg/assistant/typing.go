package assistant

import (
	"context"
	"time"
)

// Reveal calls emit with growing prefixes of text, one rune per interval,
// ending with the full text. It is cosmetic and must only be called once the
// response text exists. A non-positive interval emits the full text once.
func Reveal(ctx context.Context, text string, interval time.Duration, emit func(prefix string) error) error {
	if interval <= 0 || text == "" {
		return emit(text)
	}

	runes := []rune(text)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 1; i <= len(runes); i++ {
		if i > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		if err := emit(string(runes[:i])); err != nil {
			return err
		}
	}
	return nil
}
