// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"fmt"
	"time"
)

type ConfigFunc func(c *configuration) error

// MaxMessages caps how many inbox messages a single run considers. The cap
// is process-wide, not per user.
func MaxMessages(max int64) ConfigFunc {
	return func(c *configuration) error {
		if max <= 0 {
			return fmt.Errorf("MaxMessages must be positive, got %d", max)
		}

		c.MaxMessages = max
		return nil
	}
}

// ClassifyPause sets the delay before each classification call. The backend
// is rate-limited; sequential pacing keeps runs under its quota.
func ClassifyPause(pause time.Duration) ConfigFunc {
	return func(c *configuration) error {
		if pause < 0 {
			return fmt.Errorf("ClassifyPause cannot be negative, got %s", pause)
		}

		c.ClassifyPause = pause
		return nil
	}
}

type configuration struct {
	MaxMessages   int64
	ClassifyPause time.Duration
}
