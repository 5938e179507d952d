// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=mocks/classifier.go -package=mocks . Classifier

// ErrQuotaExhausted signals that the classification backend rejected the
// call for quota reasons. It is the only classifier failure that propagates
// to the caller; a run aborts on it instead of hammering the backend.
var ErrQuotaExhausted = errors.New("classifier quota exhausted")

// CatchAllCategory is always offered to the model in addition to the user
// categories so it has a valid choice when nothing fits.
const CatchAllCategory = "Other"

type Classification struct {
	Summary  string
	Category string
}

type Classifier interface {
	// Classify returns (nil, nil) when no usable result could be obtained;
	// only quota exhaustion is reported as an error.
	Classify(ctx context.Context, body string, categories []*Category) (*Classification, error)
}
