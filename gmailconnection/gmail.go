// SPDX-License-Identifier: GPL-3.0-or-later
package gmailconnection

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/mvelho/go-mail-triage/config"
	"github.com/mvelho/go-mail-triage/domain"
	"github.com/mvelho/go-mail-triage/log"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const inboxLabel = "INBOX"

// Connector turns stored credential material into a live Gmail handle.
// Token refresh is handled by the oauth2 token source; revoked or malformed
// credentials surface as an error from the first call on the handle.
type Connector struct {
	oauthConfig *oauth2.Config
	l           *logrus.Logger
}

func NewConnector(conf *config.Config) *Connector {
	return &Connector{
		oauthConfig: &oauth2.Config{
			ClientID:     conf.GoogleClientID,
			ClientSecret: conf.GoogleClientSecret,
			RedirectURL:  conf.GoogleRedirectURL,
			Scopes: []string{
				gmail.GmailReadonlyScope,
				gmail.GmailModifyScope,
			},
			Endpoint: google.Endpoint,
		},
		l: log.Logger(log.LOG_GMAIL),
	}
}

func (c *Connector) Connect(ctx context.Context, token *domain.TokenData) (domain.MailSource, error) {
	oauthToken := &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if token.ExpiresAt > 0 {
		oauthToken.Expiry = time.Unix(token.ExpiresAt, 0)
	}

	service, err := gmail.NewService(ctx, option.WithTokenSource(
		c.oauthConfig.TokenSource(ctx, oauthToken),
	))
	if err != nil {
		return nil, fmt.Errorf("could not build gmail service: %w", err)
	}

	return &Source{
		service: service,
		l:       c.l,
	}, nil
}

// Source adapts one authenticated mailbox to the triage loop.
type Source struct {
	service *gmail.Service
	l       *logrus.Logger
}

// ListCandidates fetches a single page of the newest inbox message ids.
// A listing failure is logged and reported as an empty batch so one broken
// mailbox never takes down the whole fan-out.
func (s *Source) ListCandidates(ctx context.Context, max int64) []string {
	response, err := s.service.Users.Messages.List("me").
		LabelIds(inboxLabel).
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		s.l.WithField("error", err).Warn("Could not list inbox messages")
		return []string{}
	}

	ids := []string{}
	for _, message := range response.Messages {
		ids = append(ids, message.Id)
	}

	s.l.WithField("count", len(ids)).Debug("Listed inbox messages")
	return ids
}

func (s *Source) FetchDetail(ctx context.Context, id string) (*domain.MailMessage, error) {
	message, err := s.service.Users.Messages.Get("me", id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("could not fetch message %s: %w", id, err)
	}

	s.l.WithFields(logrus.Fields{"message": id, "snippet": shortSnippet(message.Snippet)}).Debug("Fetched message")

	return &domain.MailMessage{
		ID:          message.Id,
		Snippet:     message.Snippet,
		Body:        extractBody(message.Payload),
		SentDate:    headerValue(message.Payload, "Date"),
		FromAddress: headerValue(message.Payload, "From"),
	}, nil
}

func (s *Source) Archive(ctx context.Context, id string) error {
	_, err := s.service.Users.Messages.Modify("me", id, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{inboxLabel},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not archive message %s: %w", id, err)
	}

	return nil
}

func (s *Source) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.service.Users.Messages.BatchDelete("me", &gmail.BatchDeleteMessagesRequest{
		Ids: ids,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not batch delete %d messages: %w", len(ids), err)
	}

	s.l.WithField("count", len(ids)).Info("Deleted messages remotely")
	return nil
}

// extractBody prefers the html part, falls back to plain text, and only
// inspects top-level parts. Unparseable part data counts as absent.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if len(payload.Parts) > 0 {
		for _, mimeType := range []string{"text/html", "text/plain"} {
			for _, part := range payload.Parts {
				if part.MimeType != mimeType || part.Body == nil {
					continue
				}
				if decoded := decodePartData(part.Body.Data); len(decoded) > 0 {
					return decoded
				}
			}
		}
		return ""
	}

	if payload.Body == nil {
		return ""
	}
	return decodePartData(payload.Body.Data)
}

// decodePartData handles both padded and unpadded web-safe base64, which the
// API is inconsistent about.
func decodePartData(data string) string {
	if len(data) == 0 {
		return ""
	}

	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
	}
	if err != nil {
		return ""
	}

	return string(decoded)
}

const logSnippetLength = 40

// shortSnippet truncates a snippet for log output.
func shortSnippet(snippet string) string {
	runes := []rune(snippet)
	if len(runes) <= logSnippetLength {
		return snippet
	}

	return string(runes[:logSnippetLength]) + "..."
}

func headerValue(payload *gmail.MessagePart, name string) string {
	if payload == nil {
		return ""
	}

	for _, header := range payload.Headers {
		if header.Name == name {
			return header.Value
		}
	}

	return ""
}
