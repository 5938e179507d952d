// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaxMessages(t *testing.T) {
	tests := []struct {
		name string
		max  int64
		err  string
	}{
		{"positive", 25, ""},
		{"one", 1, ""},
		{"zero", 0, "MaxMessages must be positive, got 0"},
		{"negative", -5, "MaxMessages must be positive, got -5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := &configuration{}
			err := MaxMessages(tc.max)(config)
			if len(tc.err) == 0 {
				assert.NoError(t, err)
				assert.Equal(t, tc.max, config.MaxMessages)
			} else {
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

func TestClassifyPause(t *testing.T) {
	tests := []struct {
		name  string
		pause time.Duration
		err   string
	}{
		{"positive", 2 * time.Second, ""},
		{"zero", 0, ""},
		{"negative", -time.Second, "ClassifyPause cannot be negative, got -1s"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := &configuration{}
			err := ClassifyPause(tc.pause)(config)
			if len(tc.err) == 0 {
				assert.NoError(t, err)
				assert.Equal(t, tc.pause, config.ClassifyPause)
			} else {
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}
