// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mvelho/go-mail-triage/domain"
	"github.com/mvelho/go-mail-triage/log"

	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxMessages   = 10
	DefaultClassifyPause = 2 * time.Second
)

// Triage ingests one mailbox per Run: list recent inbox messages, classify
// each into the owner's categories, persist the result and archive the
// source message. Runs are idempotent; already-ingested messages are
// skipped and duplicate inserts from concurrent runs are benign.
type Triage struct {
	store      domain.Store
	connector  domain.MailConnector
	classifier domain.Classifier

	configuration *configuration

	l *logrus.Logger
}

func NewTriage(store domain.Store, connector domain.MailConnector, classifier domain.Classifier, configFunc ...ConfigFunc) (*Triage, error) {
	config := &configuration{
		MaxMessages:   DefaultMaxMessages,
		ClassifyPause: DefaultClassifyPause,
	}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return &Triage{
		store:         store,
		connector:     connector,
		classifier:    classifier,
		configuration: config,
		l:             log.Logger(log.LOG_TRIAGE),
	}, nil
}

// Run processes one mailbox to completion. Per-message failures are logged
// and skipped; only credential problems, store failures and classifier
// quota exhaustion abort the run. Quota exhaustion is returned wrapping
// domain.ErrQuotaExhausted so the caller can record it distinctly.
func (t *Triage) Run(ctx context.Context, account *domain.LinkedAccount) error {
	owner := account.OwnerEmail
	baseLogger := t.l.WithFields(logrus.Fields{"owner": owner, "mailbox": account.LinkedEmail})

	categories, err := t.store.CategoriesByOwner(owner)
	if err != nil {
		return fmt.Errorf("could not load categories: %w", err)
	}

	if len(categories) == 0 {
		// Nothing to classify into; a deliberate no-op, not a failure
		baseLogger.Info("Owner has no categories, nothing to do")
		return nil
	}

	token, err := domain.DecodeTokenData(account.TokenData)
	if err != nil {
		return fmt.Errorf("could not decode credentials for %s: %w", account.LinkedEmail, err)
	}

	source, err := t.connector.Connect(ctx, token)
	if err != nil {
		return fmt.Errorf("could not connect mailbox %s: %w", account.LinkedEmail, err)
	}

	ids := source.ListCandidates(ctx, t.configuration.MaxMessages)
	if len(ids) == 0 {
		baseLogger.Info("Mailbox contains no candidate messages")
		return nil
	}

	categoryByName := map[string]*domain.Category{}
	for _, category := range categories {
		categoryByName[category.Name] = category
	}

	baseLogger.WithField("candidates", len(ids)).Info("Processing messages")

	processed, skipped := 0, 0
	for _, id := range ids {
		exists, err := t.store.EmailExists(owner, id)
		if err != nil {
			return fmt.Errorf("could not check for existing email: %w", err)
		}
		if exists {
			skipped++
			continue
		}

		detail, err := source.FetchDetail(ctx, id)
		if err != nil {
			baseLogger.WithFields(logrus.Fields{"message": id, "error": err}).Warn("Could not fetch message, skipping")
			skipped++
			continue
		}
		if len(detail.Body) == 0 {
			baseLogger.WithField("message", id).Debug("Message has no usable body, skipping")
			skipped++
			continue
		}

		if t.configuration.ClassifyPause > 0 {
			time.Sleep(t.configuration.ClassifyPause)
		}

		result, err := t.classifier.Classify(ctx, detail.Body, categories)
		if err != nil {
			return fmt.Errorf("could not classify message %s: %w", id, err)
		}
		if result == nil {
			baseLogger.WithField("message", id).Debug("No classification result, skipping")
			skipped++
			continue
		}

		category, ok := categoryByName[result.Category]
		if !ok {
			if result.Category == domain.CatchAllCategory {
				// The classifier saw nothing matching the owner's set
				baseLogger.WithField("message", id).Debug("Message fits no category, skipping")
			} else {
				baseLogger.WithFields(logrus.Fields{"message": id, "category": result.Category}).Warn("Classifier returned unknown category, skipping")
			}
			skipped++
			continue
		}

		err = t.store.SaveEmail(&domain.Email{
			ID:          detail.ID,
			OwnerEmail:  owner,
			Summary:     result.Summary,
			Snippet:     detail.Snippet,
			SentDate:    detail.SentDate,
			FromAddress: detail.FromAddress,
			Body:        detail.Body,
			CategoryID:  category.ID,
		})
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// A concurrent run got there first
			baseLogger.WithField("message", id).Debug("Message was ingested concurrently, skipping")
			skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("could not save email: %w", err)
		}

		// Only after the record is durable; a failed archive leaves the
		// message in the inbox but never loses the record
		err = source.Archive(ctx, id)
		if err != nil {
			baseLogger.WithFields(logrus.Fields{"message": id, "error": err}).Warn("Could not archive message")
		}

		processed++
	}

	baseLogger.WithFields(logrus.Fields{"processed": processed, "skipped": skipped}).Info("Finished run")
	return nil
}

// RunAndRecord executes Run and records the owner's terminal sync status.
// With several mailboxes fanning out per owner, the last run to resolve
// wins the status row.
func (t *Triage) RunAndRecord(ctx context.Context, account *domain.LinkedAccount) {
	err := t.Run(ctx, account)

	status := domain.StatusCompleted
	switch {
	case errors.Is(err, domain.ErrQuotaExhausted):
		status = domain.StatusRateLimitExceeded
		t.l.WithField("owner", account.OwnerEmail).Warn("Run stopped, classifier quota exhausted")
	case err != nil:
		status = domain.StatusFailed
		t.l.WithFields(logrus.Fields{"owner": account.OwnerEmail, "mailbox": account.LinkedEmail, "error": err}).Error("Run failed")
	}

	err = t.store.SetSyncStatus(account.OwnerEmail, status)
	if err != nil {
		t.l.WithFields(logrus.Fields{"owner": account.OwnerEmail, "error": err}).Error("Could not record sync status")
	}
}
