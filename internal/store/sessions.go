package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/models"
)

// ErrSessionNotFound is returned when no checkout session has the reference
var ErrSessionNotFound = errors.New("checkout session not found")

// CreateSession records a new checkout session
func (s *Store) CreateSession(ctx context.Context, session *models.CheckoutSession) error {
	query := `
		INSERT INTO checkout_sessions
			(reference, session_id, email, amount, currency, description, mode, status, checkout_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := s.db.QueryRowxContext(ctx, query,
		session.Reference, session.SessionID, session.Email, session.Amount, session.Currency,
		session.Description, session.Mode, session.Status, session.CheckoutURL,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create checkout session: %w", err)
	}
	return nil
}

// GetSession retrieves a checkout session by provider reference
func (s *Store) GetSession(ctx context.Context, reference string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	err := s.db.GetContext(ctx, &session,
		"SELECT * FROM checkout_sessions WHERE reference = $1", reference)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSessionStatus moves a pending session to status. It reports false
// when the session was already settled.
func (s *Store) UpdateSessionStatus(ctx context.Context, reference, status string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE checkout_sessions SET status = $1, updated_at = NOW() WHERE reference = $2 AND status = $3",
		status, reference, models.CheckoutStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to update checkout session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetSessionsBySessionID lists the latest checkout sessions started from a
// cart session, newest first
func (s *Store) GetSessionsBySessionID(ctx context.Context, sessionID string, limit int) ([]models.CheckoutSession, error) {
	sessions := []models.CheckoutSession{}
	err := s.db.SelectContext(ctx, &sessions,
		"SELECT * FROM checkout_sessions WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2", sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout sessions: %w", err)
	}
	return sessions, nil
}

// IsEventProcessed checks if an event has been processed
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id = $1)", eventID)
	return exists, err
}

// MarkEventProcessed marks an event as processed. It reports false when the
// event had already been recorded.
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
