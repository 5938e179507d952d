// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockgen -destination=mocks/mail.go -package=mocks . MailSource,MailConnector

// TokenData is the serialized credential material stored per linked account.
// It is produced by the authorization flow and consumed here only to build a
// mailbox handle; refresh is delegated to the oauth library.
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

func DecodeTokenData(raw string) (*TokenData, error) {
	token := &TokenData{}
	err := json.Unmarshal([]byte(raw), token)
	if err != nil {
		return nil, fmt.Errorf("could not decode token data: %w", err)
	}

	if len(token.AccessToken) == 0 {
		return nil, fmt.Errorf("token data contains no access token")
	}

	return token, nil
}

func (t *TokenData) Encode() (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("could not encode token data: %w", err)
	}
	return string(raw), nil
}

// MailMessage is the fetched detail of one remote message. SentDate is the
// raw Date header, passed through opaquely and never reparsed.
type MailMessage struct {
	ID          string
	Snippet     string
	Body        string
	SentDate    string
	FromAddress string
}

type MailSource interface {
	// ListCandidates returns up to max message ids from the inbox, newest
	// first, single page. Listing failures are logged and reported as an
	// empty slice so one bad listing never crashes a batch.
	ListCandidates(ctx context.Context, max int64) []string
	FetchDetail(ctx context.Context, id string) (*MailMessage, error)
	Archive(ctx context.Context, id string) error
	BatchDelete(ctx context.Context, ids []string) error
}

type MailConnector interface {
	Connect(ctx context.Context, token *TokenData) (MailSource, error)
}
