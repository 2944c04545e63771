// Package repository implements the typed stores on top of gorm. Every
// exported method bounds its work with the configured store timeout and
// returns errors classified by utils.ClassifyDBError.
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const defaultTimeout = 5 * time.Second

type base struct {
	db      *gorm.DB
	timeout time.Duration
}

func newBase(db *gorm.DB, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return base{db: db, timeout: timeout}
}

// conn returns a session bound to a context carrying the store deadline.
func (b base) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	return b.db.WithContext(ctx), cancel
}
