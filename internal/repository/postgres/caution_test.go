package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental/internal/domain"
	"rental/internal/repository"
)

func TestCautionRepository_GetByBookingID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCautionRepository(db)

	heldAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	createdAt := heldAt.Add(-time.Hour)

	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "booking_id", "amount", "status", "payment_method",
		"held_at", "released_at", "charged_at", "charged_amount", "created_at",
	}).AddRow(
		"caution-1", "tenant-1", "booking-1", 300.0, "HELD", "PAYSERA",
		heldAt, nil, nil, nil, createdAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM cautions WHERE booking_id").
		WithArgs("booking-1").
		WillReturnRows(rows)

	caution, err := repo.GetByBookingID(context.Background(), "booking-1")
	require.NoError(t, err)

	assert.Equal(t, "caution-1", caution.ID)
	assert.Equal(t, domain.CautionStatusHeld, caution.Status)
	assert.Equal(t, 300.0, caution.Amount)
	assert.Equal(t, heldAt, caution.HeldAt)
	assert.True(t, caution.ReleasedAt.IsZero())
	assert.Zero(t, caution.ChargedAmount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCautionRepository_GetByBookingIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCautionRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM cautions WHERE booking_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByBookingID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCautionRepository_UpdatePersistsChargeFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCautionRepository(db)

	chargedAt := time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)
	caution := &domain.Caution{
		ID:            "caution-1",
		Status:        domain.CautionStatusPartiallyCharged,
		ChargedAt:     chargedAt,
		ChargedAmount: 150,
	}

	mock.ExpectExec("UPDATE cautions").
		WithArgs(
			string(domain.CautionStatusPartiallyCharged),
			nullTime(caution.HeldAt),
			nullTime(caution.ReleasedAt),
			nullTime(chargedAt),
			sqlmock.AnyArg(),
			"caution-1",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), caution))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCautionRepository_UpdateMissingCaution(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCautionRepository(db)

	mock.ExpectExec("UPDATE cautions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), &domain.Caution{ID: "missing"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
