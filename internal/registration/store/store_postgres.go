package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"crease/internal/registration/models"
)

// PostgresStore persists registrations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registration store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) Insert(ctx context.Context, sub models.Submission) (*models.Registration, error) {
	query := `
		INSERT INTO registrations (
			team_name, leader_name, leader_contact, location, tournament_date,
			payment_proof, terms_accepted, status, registered_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', now())
		RETURNING id, status, registered_at
	`
	record := &models.Registration{
		TeamName:      sub.TeamName,
		LeaderName:    sub.LeaderName,
		LeaderContact: sub.LeaderContact,
		Location:      sub.Location,
		Date:          sub.Date,
		PaymentProof:  sub.PaymentProof,
		TermsAccepted: sub.TermsAccepted,
	}
	var status string
	err := s.db.QueryRowContext(ctx, query,
		sub.TeamName,
		sub.LeaderName,
		sub.LeaderContact,
		sub.Location,
		sub.Date,
		sub.PaymentProof,
		sub.TermsAccepted,
	).Scan(&record.ID, &status, &record.RegisteredAt)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	record.Status = models.Status(status)
	return record, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.Registration, error) {
	query := `
		SELECT id, team_name, leader_name, leader_contact, location, tournament_date,
		       payment_proof, terms_accepted, status, registered_at
		FROM registrations
		ORDER BY registered_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var records []*models.Registration
	for rows.Next() {
		record, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	// The id column is a UUID; a malformed id is a record that cannot exist,
	// not a store failure.
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("registration %s: %w", id, ErrNotFound)
	}
	query := `UPDATE registrations SET status = $2 WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("registration %s: %w", id, ErrNotFound)
	}
	return nil
}

// Ping reports store connectivity for the readiness probe.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("registration store ping: %w", err)
	}
	return nil
}

type registrationRow interface {
	Scan(dest ...any) error
}

func scanRegistration(row registrationRow) (*models.Registration, error) {
	record := &models.Registration{}
	var status string
	err := row.Scan(
		&record.ID,
		&record.TeamName,
		&record.LeaderName,
		&record.LeaderContact,
		&record.Location,
		&record.Date,
		&record.PaymentProof,
		&record.TermsAccepted,
		&status,
		&record.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	record.Status = models.Status(status)
	return record, nil
}
