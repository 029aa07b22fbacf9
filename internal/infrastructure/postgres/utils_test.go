package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestDuplicateDeviceError_SegunConstraint(t *testing.T) {
	d := &entity.Device{UID: "D1", Name: "iPhone 15"}

	byUID := duplicateDeviceError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "devices_pkey"}), d)
	assert.ErrorIs(t, byUID, domain.ErrDuplicate)
	assert.Contains(t, byUID.Error(), "uid D1")
	assert.NotContains(t, byUID.Error(), "iPhone 15")

	byName := duplicateDeviceError(&pgconn.PgError{Code: "23505", ConstraintName: "devices_name_key"}, d)
	assert.ErrorIs(t, byName, domain.ErrDuplicate)
	assert.Contains(t, byName.Error(), "name iPhone 15")
}

func TestPageClause(t *testing.T) {
	clause, args := pageClause([]any{"Mobile"}, 20, 40)
	assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{"Mobile", 20, 40}, args)

	clause, args = pageClause(nil, 0, 0)
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestMigrationsEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
}
