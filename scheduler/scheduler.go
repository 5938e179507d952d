// SPDX-License-Identifier: GPL-3.0-or-later
package scheduler

import (
	"context"
	"fmt"

	"github.com/mvelho/go-mail-triage/domain"
	"github.com/mvelho/go-mail-triage/log"

	"github.com/sirupsen/logrus"
)

// Runner processes one linked mailbox end to end and records the owner's
// terminal sync status itself.
type Runner interface {
	RunAndRecord(ctx context.Context, account *domain.LinkedAccount)
}

// Scheduler fans mailbox runs out onto a task queue. One owner may have
// several linked mailboxes; each becomes an independent task so one broken
// credential never blocks the others.
type Scheduler struct {
	store  domain.Store
	runner Runner
	queue  domain.TaskQueue

	l *logrus.Logger
}

func NewScheduler(store domain.Store, runner Runner, queue domain.TaskQueue) *Scheduler {
	return &Scheduler{
		store:  store,
		runner: runner,
		queue:  queue,
		l:      log.Logger(log.LOG_SCHEDULER),
	}
}

// SyncOwner marks the owner as processing and enqueues one run per linked
// mailbox. It returns once the tasks are queued, not once they finish.
func (s *Scheduler) SyncOwner(ctx context.Context, ownerEmail string) error {
	accounts, err := s.store.LinkedAccountsByOwner(ownerEmail)
	if err != nil {
		return fmt.Errorf("could not load linked accounts: %w", err)
	}

	if len(accounts) == 0 {
		s.l.WithField("owner", ownerEmail).Info("Owner has no linked mailboxes")
		return nil
	}

	err = s.store.SetSyncStatus(ownerEmail, domain.StatusProcessing)
	if err != nil {
		return fmt.Errorf("could not record sync status: %w", err)
	}

	s.l.WithFields(logrus.Fields{"owner": ownerEmail, "mailboxes": len(accounts)}).Info("Scheduling mailbox runs")

	for _, account := range accounts {
		s.queue.Submit(func() {
			s.runner.RunAndRecord(ctx, account)
		})
	}

	return nil
}

// SyncAll schedules runs for every owner with at least one linked mailbox.
// A failing owner is logged and skipped so the sweep always covers the rest.
func (s *Scheduler) SyncAll(ctx context.Context) error {
	owners, err := s.store.OwnersWithLinkedAccounts()
	if err != nil {
		return fmt.Errorf("could not load owners: %w", err)
	}

	s.l.WithField("owners", len(owners)).Info("Starting sweep")

	for _, owner := range owners {
		err := s.SyncOwner(ctx, owner)
		if err != nil {
			s.l.WithFields(logrus.Fields{"owner": owner, "error": err}).Error("Could not schedule owner")
		}
	}

	return nil
}
