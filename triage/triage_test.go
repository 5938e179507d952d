// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/mvelho/go-mail-triage/domain"
	"github.com/mvelho/go-mail-triage/domain/mocks"
	"github.com/mvelho/go-mail-triage/log"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "owner@example.com"

var testCategories = []*domain.Category{
	{ID: "cat-jobs", OwnerEmail: testOwner, Name: "Jobs", Description: "Job offers"},
	{ID: "cat-promo", OwnerEmail: testOwner, Name: "Promotions", Description: "Marketing emails"},
}

func nullLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testAccount() *domain.LinkedAccount {
	return &domain.LinkedAccount{
		OwnerEmail:  testOwner,
		LinkedEmail: testOwner,
		TokenData:   `{"access_token": "fake-token"}`,
		IsPrimary:   true,
	}
}

func setupTriage(t *testing.T) (*gomock.Controller, *Triage, *mocks.MockStore, *mocks.MockMailConnector, *mocks.MockMailSource, *mocks.MockClassifier) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockStore(ctrl)
	connector := mocks.NewMockMailConnector(ctrl)
	source := mocks.NewMockMailSource(ctrl)
	classifier := mocks.NewMockClassifier(ctrl)

	triage := &Triage{
		store:      store,
		connector:  connector,
		classifier: classifier,
		configuration: &configuration{
			MaxMessages:   10,
			ClassifyPause: 0,
		},
		l: nullLogger(),
	}

	return ctrl, triage, store, connector, source, classifier
}

func expectConnected(store *mocks.MockStore, connector *mocks.MockMailConnector, source *mocks.MockMailSource, ids ...string) {
	store.EXPECT().
		CategoriesByOwner(gomock.Eq(testOwner)).
		Return(testCategories, nil)

	connector.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(source, nil)

	source.EXPECT().
		ListCandidates(gomock.Any(), gomock.Eq(int64(10))).
		Return(ids)
}

func jobDetail(id string) *domain.MailMessage {
	return &domain.MailMessage{
		ID:          id,
		Snippet:     "Job opportunity...",
		Body:        "<html>We would like to offer you a position</html>",
		SentDate:    "Tue, 2 Sep 2025 10:00:00 -0300",
		FromAddress: "recruiter@company.com",
	}
}

func TestNewTriage(t *testing.T) {
	log.InitLogging("error")
	tests := []struct {
		name string
		cfgs []ConfigFunc
		err  string
	}{
		{"ok", []ConfigFunc{}, ""},
		{"with options", []ConfigFunc{MaxMessages(25), ClassifyPause(0)}, ""},
		{"bad max", []ConfigFunc{MaxMessages(0)}, "error applying configuration: MaxMessages must be positive, got 0"},
		{"bad pause", []ConfigFunc{ClassifyPause(-1)}, "error applying configuration: ClassifyPause cannot be negative, got -1ns"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			triage, err := NewTriage(nil, nil, nil, tc.cfgs...)
			if len(tc.err) == 0 {
				assert.NotNil(t, triage)
				assert.NoError(t, err)
			} else {
				assert.Nil(t, triage)
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

func TestTriage_RunNoCategories(t *testing.T) {
	ctrl, triage, store, _, _, _ := setupTriage(t)
	defer ctrl.Finish()

	store.EXPECT().
		CategoriesByOwner(gomock.Eq(testOwner)).
		Return([]*domain.Category{}, nil)

	// No mailbox connection, no records, no error
	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunNoMessages(t *testing.T) {
	ctrl, triage, store, connector, source, _ := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source)

	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunBadCredentials(t *testing.T) {
	ctrl, triage, store, _, _, _ := setupTriage(t)
	defer ctrl.Finish()

	store.EXPECT().
		CategoriesByOwner(gomock.Eq(testOwner)).
		Return(testCategories, nil)

	account := testAccount()
	account.TokenData = "not json"

	err := triage.Run(context.Background(), account)
	assert.Error(t, err)
}

func TestTriage_RunConnectFailure(t *testing.T) {
	ctrl, triage, store, connector, _, _ := setupTriage(t)
	defer ctrl.Finish()

	store.EXPECT().
		CategoriesByOwner(gomock.Eq(testOwner)).
		Return(testCategories, nil)

	connector.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("credential revoked"))

	err := triage.Run(context.Background(), testAccount())
	assert.Error(t, err)
}

func TestTriage_RunProcessesMessage(t *testing.T) {
	ctrl, triage, store, connector, source, classifier := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1")

	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Eq("msg1")).
		Return(false, nil)

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg1")).
		Return(jobDetail("msg1"), nil)

	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Eq(jobDetail("msg1").Body), gomock.Eq(testCategories)).
		Return(&domain.Classification{Summary: "A great job offer", Category: "Jobs"}, nil)

	var saved *domain.Email
	store.EXPECT().
		SaveEmail(gomock.Any()).
		DoAndReturn(func(email *domain.Email) error {
			saved = email
			return nil
		})

	source.EXPECT().
		Archive(gomock.Any(), gomock.Eq("msg1")).
		Return(nil)

	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "msg1", saved.ID)
	assert.Equal(t, testOwner, saved.OwnerEmail)
	assert.Equal(t, "A great job offer", saved.Summary)
	assert.Equal(t, "cat-jobs", saved.CategoryID)
	assert.Equal(t, "recruiter@company.com", saved.FromAddress)
	assert.Equal(t, jobDetail("msg1").Body, saved.Body)
}

func TestTriage_RunSkipsAlreadyIngested(t *testing.T) {
	ctrl, triage, store, connector, source, _ := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1", "msg2")

	// Both known from an earlier run: no fetch, no classify, no insert
	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Eq("msg1")).
		Return(true, nil)
	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Eq("msg2")).
		Return(true, nil)

	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunSkipsFetchFailureAndEmptyBody(t *testing.T) {
	ctrl, triage, store, connector, source, classifier := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1", "msg2", "msg3")

	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Any()).
		Return(false, nil).
		Times(3)

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg1")).
		Return(nil, fmt.Errorf("transient fetch error"))

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg2")).
		Return(&domain.MailMessage{ID: "msg2", Body: ""}, nil)

	// Only the healthy third message makes it through the loop
	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg3")).
		Return(jobDetail("msg3"), nil)

	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Classification{Summary: "s", Category: "Jobs"}, nil)

	store.EXPECT().
		SaveEmail(gomock.Any()).
		Return(nil)

	source.EXPECT().
		Archive(gomock.Any(), gomock.Eq("msg3")).
		Return(nil)

	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunSkipsUnknownCategory(t *testing.T) {
	ctrl, triage, store, connector, source, classifier := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1")

	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Eq("msg1")).
		Return(false, nil)

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg1")).
		Return(jobDetail("msg1"), nil)

	// A hallucinated label outside the stored set creates no record
	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Classification{Summary: "s", Category: "Lottery"}, nil)

	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunSkipsCatchAllResult(t *testing.T) {
	ctrl, triage, store, connector, source, classifier := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1")

	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Eq("msg1")).
		Return(false, nil)

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg1")).
		Return(jobDetail("msg1"), nil)

	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Classification{Summary: "s", Category: domain.CatchAllCategory}, nil)

	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunSkipsNoClassificationResult(t *testing.T) {
	ctrl, triage, store, connector, source, classifier := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1")

	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Eq("msg1")).
		Return(false, nil)

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg1")).
		Return(jobDetail("msg1"), nil)

	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunDuplicateInsertIsBenign(t *testing.T) {
	ctrl, triage, store, connector, source, classifier := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1", "msg2")

	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Any()).
		Return(false, nil).
		Times(2)

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string) (*domain.MailMessage, error) {
			return jobDetail(id), nil
		}).
		Times(2)

	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Classification{Summary: "s", Category: "Jobs"}, nil).
		Times(2)

	// A concurrent run won the race for msg1; msg2 is unaffected and the
	// run still finishes cleanly. No archive for the lost race.
	store.EXPECT().
		SaveEmail(gomock.Any()).
		DoAndReturn(func(email *domain.Email) error {
			if email.ID == "msg1" {
				return domain.ErrDuplicateEmail
			}
			return nil
		}).
		Times(2)

	source.EXPECT().
		Archive(gomock.Any(), gomock.Eq("msg2")).
		Return(nil)

	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunQuotaExhaustionAborts(t *testing.T) {
	ctrl, triage, store, connector, source, classifier := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1", "msg2", "msg3")

	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Eq("msg1")).
		Return(false, nil)

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg1")).
		Return(jobDetail("msg1"), nil)

	// Quota failure on the first message stops the batch: no fetch or
	// classify expectations exist for msg2/msg3
	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrQuotaExhausted)

	err := triage.Run(context.Background(), testAccount())
	assert.ErrorIs(t, err, domain.ErrQuotaExhausted)
}

func TestTriage_RunArchiveFailureKeepsRecord(t *testing.T) {
	ctrl, triage, store, connector, source, classifier := setupTriage(t)
	defer ctrl.Finish()

	expectConnected(store, connector, source, "msg1")

	store.EXPECT().
		EmailExists(gomock.Eq(testOwner), gomock.Eq("msg1")).
		Return(false, nil)

	source.EXPECT().
		FetchDetail(gomock.Any(), gomock.Eq("msg1")).
		Return(jobDetail("msg1"), nil)

	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Classification{Summary: "s", Category: "Jobs"}, nil)

	store.EXPECT().
		SaveEmail(gomock.Any()).
		Return(nil)

	source.EXPECT().
		Archive(gomock.Any(), gomock.Eq("msg1")).
		Return(fmt.Errorf("archive failed"))

	// The persisted record survives a failed archive
	err := triage.Run(context.Background(), testAccount())
	assert.NoError(t, err)
}

func TestTriage_RunAndRecord(t *testing.T) {
	tests := []struct {
		name           string
		runErr         error
		expectedStatus string
	}{
		{"completed", nil, domain.StatusCompleted},
		{"rate limited", domain.ErrQuotaExhausted, domain.StatusRateLimitExceeded},
		{"failed", fmt.Errorf("credential revoked"), domain.StatusFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, triage, store, connector, _, _ := setupTriage(t)
			defer ctrl.Finish()

			if tc.runErr == nil {
				store.EXPECT().
					CategoriesByOwner(gomock.Eq(testOwner)).
					Return([]*domain.Category{}, nil)
			} else {
				store.EXPECT().
					CategoriesByOwner(gomock.Eq(testOwner)).
					Return(testCategories, nil)
				connector.EXPECT().
					Connect(gomock.Any(), gomock.Any()).
					Return(nil, tc.runErr)
			}

			store.EXPECT().
				SetSyncStatus(gomock.Eq(testOwner), gomock.Eq(tc.expectedStatus)).
				Return(nil)

			triage.RunAndRecord(context.Background(), testAccount())
		})
	}
}
