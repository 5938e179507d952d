// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "errors"

//go:generate mockgen -destination=mocks/store.go -package=mocks . Store

// ErrDuplicateEmail is returned by SaveEmail when an email with the same
// (id, owner) pair already exists. A concurrent run already ingested the
// message; callers treat this as a benign skip.
var ErrDuplicateEmail = errors.New("email already ingested")

const (
	StatusIdle              = "idle"
	StatusProcessing        = "processing"
	StatusCompleted         = "completed"
	StatusRateLimitExceeded = "rate_limit_exceeded"
	StatusFailed            = "failed"
)

type Category struct {
	ID          string
	OwnerEmail  string
	Name        string
	Description string
}

// Email is one ingested remote message. Records are created once by the
// triage run and never mutated afterwards; only an explicit batch delete
// removes them.
type Email struct {
	ID          string
	OwnerEmail  string
	Summary     string
	Snippet     string
	SentDate    string
	FromAddress string
	Body        string
	CategoryID  string
}

// LinkedAccount is one mailbox an owner has granted access to. The owner's
// own mailbox is stored as a row with IsPrimary set so that primary and
// secondary accounts share a single lookup path.
type LinkedAccount struct {
	ID          int64
	OwnerEmail  string
	LinkedEmail string
	TokenData   string
	IsPrimary   bool
}

type Store interface {
	Close() error

	CategoriesByOwner(ownerEmail string) ([]*Category, error)
	SaveCategory(category *Category) error

	EmailExists(ownerEmail, id string) (bool, error)
	SaveEmail(email *Email) error
	EmailsByCategory(ownerEmail, categoryID string) ([]*Email, error)
	EmailsByIDs(ownerEmail string, ids []string) ([]*Email, error)
	DeleteEmails(ownerEmail string, ids []string) error

	SaveLinkedAccount(account *LinkedAccount) error
	LinkedAccountsByOwner(ownerEmail string) ([]*LinkedAccount, error)
	OwnersWithLinkedAccounts() ([]string, error)

	// SetSyncStatus upserts the single status row for an owner,
	// last-write-wins. When runs for several mailboxes of one owner finish
	// concurrently, the surviving value is whichever run resolved last.
	SetSyncStatus(ownerEmail, status string) error
	SyncStatus(ownerEmail string) (string, error)
}
