package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(sqlx.NewDb(db, "postgres")), mock
}

var sessionColumns = []string{
	"reference", "session_id", "email", "amount", "currency", "description",
	"mode", "status", "checkout_url", "created_at", "updated_at",
}

func TestCreateSession(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO checkout_sessions")).
		WithArgs("ref_1", "cart-1", "a@b.co", int64(10000), "XOF", "2 items from Malika",
			models.ModeModal, models.CheckoutStatusPending, "https://pay.example/ref_1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	session := &models.CheckoutSession{
		Reference:   "ref_1",
		SessionID:   "cart-1",
		Email:       "a@b.co",
		Amount:      10000,
		Currency:    "XOF",
		Description: "2 items from Malika",
		Mode:        models.ModeModal,
		Status:      models.CheckoutStatusPending,
		CheckoutURL: "https://pay.example/ref_1",
	}
	require.NoError(t, s.CreateSession(context.Background(), session))
	assert.Equal(t, now, session.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSession(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM checkout_sessions WHERE reference = $1")).
		WithArgs("ref_1").
		WillReturnRows(sqlmock.NewRows(sessionColumns).AddRow(
			"ref_1", "cart-1", "a@b.co", int64(10000), "XOF", "", models.ModeRedirect,
			models.CheckoutStatusCompleted, "https://pay.example/ref_1", now, now))

	session, err := s.GetSession(context.Background(), "ref_1")
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStatusCompleted, session.Status)
	assert.Equal(t, int64(10000), session.Amount)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM checkout_sessions WHERE reference = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	_, err = s.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionsBySessionID(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()
	query := regexp.QuoteMeta("SELECT * FROM checkout_sessions WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2")

	mock.ExpectQuery(query).
		WithArgs("cart-1", 10).
		WillReturnRows(sqlmock.NewRows(sessionColumns).
			AddRow("ref_2", "cart-1", "a@b.co", int64(3500), "XOF", "", models.ModeModal,
				models.CheckoutStatusPending, "https://pay.example/ref_2", now, now).
			AddRow("ref_1", "cart-1", "a@b.co", int64(10000), "XOF", "", models.ModeRedirect,
				models.CheckoutStatusCompleted, "https://pay.example/ref_1", now.Add(-time.Hour), now))

	sessions, err := s.GetSessionsBySessionID(context.Background(), "cart-1", 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "ref_2", sessions[0].Reference)

	mock.ExpectQuery(query).WithArgs("cart-empty", 10).WillReturnRows(sqlmock.NewRows(sessionColumns))
	sessions, err = s.GetSessionsBySessionID(context.Background(), "cart-empty", 10)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSessionStatus(t *testing.T) {
	s, mock := newMockStore(t)
	query := regexp.QuoteMeta("UPDATE checkout_sessions SET status = $1")

	mock.ExpectExec(query).
		WithArgs(models.CheckoutStatusCompleted, "ref_1", models.CheckoutStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	changed, err := s.UpdateSessionStatus(context.Background(), "ref_1", models.CheckoutStatusCompleted)
	require.NoError(t, err)
	assert.True(t, changed)

	mock.ExpectExec(query).
		WithArgs(models.CheckoutStatusCancelled, "ref_1", models.CheckoutStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	changed, err = s.UpdateSessionStatus(context.Background(), "ref_1", models.CheckoutStatusCancelled)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessedEvents(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	processed, err := s.IsEventProcessed(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, processed)

	insert := regexp.QuoteMeta("INSERT INTO processed_events")
	mock.ExpectExec(insert).WithArgs("evt-1", models.EventTypeCheckoutSignal).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WithArgs("evt-1", models.EventTypeCheckoutSignal).
		WillReturnResult(sqlmock.NewResult(0, 0))

	first, err := s.MarkEventProcessed(ctx, "evt-1", models.EventTypeCheckoutSignal)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := s.MarkEventProcessed(ctx, "evt-1", models.EventTypeCheckoutSignal)
	require.NoError(t, err)
	assert.False(t, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS checkout_sessions")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
