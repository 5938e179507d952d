// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "context"

//go:generate mockgen -destination=mocks/unsubscribe.go -package=mocks . Unsubscriber

// Unsubscriber opens an unsubscribe link and tries to complete the opt-out.
type Unsubscriber interface {
	Unsubscribe(ctx context.Context, link string) error
}
