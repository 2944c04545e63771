package utils

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyDBError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"not found", gorm.ErrRecordNotFound, KindNotFound},
		{"wrapped not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), KindNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, KindConflict},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"pg serialization failure", &pgconn.PgError{Code: "40001"}, KindTransient},
		{"pg connection failure", &pgconn.PgError{Code: "08006"}, KindTransient},
		{"pg statement timeout", &pgconn.PgError{Code: "57014"}, KindTransient},
		{"pg syntax error", &pgconn.PgError{Code: "42601"}, KindInternal},
		{"deadline", context.DeadlineExceeded, KindTransient},
		{"bad conn", driver.ErrBadConn, KindTransient},
		{"sqlite busy", errors.New("database is locked"), KindTransient},
		{"other", errors.New("boom"), KindInternal},
		{"already classified", Invalidf("bad"), KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyDBError(tt.err, "course 1")
			assert.Equal(t, tt.want, KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, ClassifyDBError(nil, "course 1"))
}

func TestAppErrorMessage(t *testing.T) {
	err := ClassifyDBError(gorm.ErrRecordNotFound, "lesson 7")
	assert.Equal(t, "lesson 7 not found: record not found", err.Error())

	assert.Equal(t, "bad input", Invalidf("bad %s", "input").Error())
	assert.Equal(t, "transient", NewError(KindTransient, "", nil).Error())

	assert.False(t, IsKind(nil, KindInternal))
	assert.True(t, IsKind(fmt.Errorf("wrapped: %w", Conflictf("dup")), KindConflict))
}
