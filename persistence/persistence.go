// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/mvelho/go-mail-triage/domain"
	"github.com/mvelho/go-mail-triage/log"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/sql/*.sql
var migrationFiles embed.FS

type Persistence struct {
	db *sqlx.DB
	l  *logrus.Logger
}

func NewPersistence(datasource string) (*Persistence, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_PERSISTENCE)
	l.WithField("file", datasource).Info("Connected")

	migrationSource := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations/sql",
	}

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA foreign_keys=on`)
	if err != nil {
		return nil, fmt.Errorf("could not enable foreign keys: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrationSource, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Persistence{
		db: db,
		l:  l,
	}, nil
}

func (p *Persistence) Close() error {
	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	p.l.Info("Disconnected")
	return nil
}

func (p *Persistence) CategoriesByOwner(ownerEmail string) ([]*domain.Category, error) {
	dbCategories := []struct {
		Id          string
		OwnerEmail  string `db:"owner_email"`
		Name        string
		Description string
	}{}

	err := p.db.Select(
		&dbCategories,
		`SELECT id, owner_email, name, description FROM categories WHERE owner_email = ? ORDER BY name`,
		ownerEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	categories := []*domain.Category{}
	for _, c := range dbCategories {
		categories = append(
			categories,
			&domain.Category{
				ID:          c.Id,
				OwnerEmail:  c.OwnerEmail,
				Name:        c.Name,
				Description: c.Description,
			},
		)
	}

	p.l.WithFields(logrus.Fields{"owner": ownerEmail, "count": len(categories)}).Debug("Found categories")

	return categories, nil
}

func (p *Persistence) SaveCategory(category *domain.Category) error {
	_, err := p.db.Exec(
		"INSERT INTO categories (id, owner_email, name, description) VALUES (?, ?, ?, ?)",
		category.ID,
		category.OwnerEmail,
		category.Name,
		category.Description,
	)
	if err != nil {
		return fmt.Errorf("could not save category: %w", err)
	}

	p.l.WithFields(logrus.Fields{"owner": category.OwnerEmail, "name": category.Name}).Info("Persisted category")
	return nil
}

func (p *Persistence) EmailExists(ownerEmail, id string) (bool, error) {
	var count int
	err := p.db.Get(
		&count,
		"SELECT COUNT(*) FROM emails WHERE id = ? AND owner_email = ?",
		id,
		ownerEmail,
	)
	if err != nil {
		return false, fmt.Errorf("could not query db: %w", err)
	}

	return count > 0, nil
}

// SaveEmail commits a single record; a primary-key collision means another
// run ingested the message first and is reported as domain.ErrDuplicateEmail.
func (p *Persistence) SaveEmail(email *domain.Email) error {
	_, err := p.db.Exec(
		"INSERT INTO emails (id, owner_email, summary, snippet, sent_date, from_address, body, category_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		email.ID,
		email.OwnerEmail,
		email.Summary,
		email.Snippet,
		email.SentDate,
		email.FromAddress,
		email.Body,
		email.CategoryID,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("could not save email: %w", err)
	}

	return nil
}

func (p *Persistence) EmailsByCategory(ownerEmail, categoryID string) ([]*domain.Email, error) {
	return p.selectEmails(
		`SELECT id, owner_email, summary, snippet, sent_date, from_address, body, category_id
		 FROM emails WHERE owner_email = ? AND category_id = ?`,
		ownerEmail,
		categoryID,
	)
}

func (p *Persistence) EmailsByIDs(ownerEmail string, ids []string) ([]*domain.Email, error) {
	if len(ids) == 0 {
		return []*domain.Email{}, nil
	}

	qry, args, err := sqlx.In(
		`SELECT id, owner_email, summary, snippet, sent_date, from_address, body, category_id
		 FROM emails WHERE owner_email = ? AND id IN (?)`,
		ownerEmail,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create query: %w", err)
	}

	return p.selectEmails(qry, args...)
}

func (p *Persistence) selectEmails(qry string, args ...interface{}) ([]*domain.Email, error) {
	dbEmails := []struct {
		Id          string
		OwnerEmail  string `db:"owner_email"`
		Summary     string
		Snippet     string
		SentDate    string `db:"sent_date"`
		FromAddress string `db:"from_address"`
		Body        string
		CategoryId  string `db:"category_id"`
	}{}

	err := p.db.Select(&dbEmails, qry, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	emails := []*domain.Email{}
	for _, e := range dbEmails {
		emails = append(
			emails,
			&domain.Email{
				ID:          e.Id,
				OwnerEmail:  e.OwnerEmail,
				Summary:     e.Summary,
				Snippet:     e.Snippet,
				SentDate:    e.SentDate,
				FromAddress: e.FromAddress,
				Body:        e.Body,
				CategoryID:  e.CategoryId,
			},
		)
	}

	return emails, nil
}

func (p *Persistence) DeleteEmails(ownerEmail string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	qry, args, err := sqlx.In(
		"DELETE FROM emails WHERE owner_email = ? AND id IN (?)",
		ownerEmail,
		ids,
	)
	if err != nil {
		return fmt.Errorf("could not create query: %w", err)
	}

	_, err = p.db.Exec(qry, args...)
	if err != nil {
		return fmt.Errorf("could not delete emails: %w", err)
	}

	p.l.WithFields(logrus.Fields{"owner": ownerEmail, "count": len(ids)}).Info("Deleted emails")
	return nil
}

// SaveLinkedAccount refreshes credential material when the owner re-grants
// access to a mailbox it already linked. A mailbox linked by a different
// owner is a constraint violation, not a silent takeover.
func (p *Persistence) SaveLinkedAccount(account *domain.LinkedAccount) error {
	result, err := p.db.Exec(
		"UPDATE linked_accounts SET token_data = ?, is_primary = ? WHERE owner_email = ? AND linked_email = ?",
		account.TokenData,
		account.IsPrimary,
		account.OwnerEmail,
		account.LinkedEmail,
	)
	if err != nil {
		return fmt.Errorf("could not update linked account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get num of affected rows: %w", err)
	}

	if affected > 0 {
		p.l.WithFields(logrus.Fields{"owner": account.OwnerEmail, "linked": account.LinkedEmail}).Info("Refreshed linked account")
		return nil
	}

	_, err = p.db.Exec(
		"INSERT INTO linked_accounts (owner_email, linked_email, token_data, is_primary) VALUES (?, ?, ?, ?)",
		account.OwnerEmail,
		account.LinkedEmail,
		account.TokenData,
		account.IsPrimary,
	)
	if err != nil {
		return fmt.Errorf("could not save linked account: %w", err)
	}

	p.l.WithFields(logrus.Fields{"owner": account.OwnerEmail, "linked": account.LinkedEmail}).Info("Persisted linked account")
	return nil
}

func (p *Persistence) LinkedAccountsByOwner(ownerEmail string) ([]*domain.LinkedAccount, error) {
	dbAccounts := []struct {
		Id          int64
		OwnerEmail  string `db:"owner_email"`
		LinkedEmail string `db:"linked_email"`
		TokenData   string `db:"token_data"`
		IsPrimary   bool   `db:"is_primary"`
	}{}

	err := p.db.Select(
		&dbAccounts,
		`SELECT id, owner_email, linked_email, token_data, is_primary FROM linked_accounts WHERE owner_email = ? ORDER BY is_primary DESC, linked_email`,
		ownerEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	accounts := []*domain.LinkedAccount{}
	for _, a := range dbAccounts {
		accounts = append(
			accounts,
			&domain.LinkedAccount{
				ID:          a.Id,
				OwnerEmail:  a.OwnerEmail,
				LinkedEmail: a.LinkedEmail,
				TokenData:   a.TokenData,
				IsPrimary:   a.IsPrimary,
			},
		)
	}

	return accounts, nil
}

func (p *Persistence) OwnersWithLinkedAccounts() ([]string, error) {
	owners := []string{}
	err := p.db.Select(
		&owners,
		"SELECT DISTINCT owner_email FROM linked_accounts ORDER BY owner_email",
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	return owners, nil
}

func (p *Persistence) SetSyncStatus(ownerEmail, status string) error {
	_, err := p.db.Exec(
		"INSERT OR REPLACE INTO sync_status (owner_email, status) VALUES (?, ?)",
		ownerEmail,
		status,
	)
	if err != nil {
		return fmt.Errorf("could not save sync status: %w", err)
	}

	p.l.WithFields(logrus.Fields{"owner": ownerEmail, "status": status}).Debug("Persisted sync status")
	return nil
}

func (p *Persistence) SyncStatus(ownerEmail string) (string, error) {
	var status string
	err := p.db.Get(
		&status,
		"SELECT status FROM sync_status WHERE owner_email = ?",
		ownerEmail,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.StatusIdle, nil
	}
	if err != nil {
		return "", fmt.Errorf("could not query db: %w", err)
	}

	return status, nil
}
