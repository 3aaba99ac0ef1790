package db

import (
	"context"

	"github.com/soartravel/soar/errors"
	"gorm.io/gorm"
)

type txKey struct{}

// Session returns the transaction bound to ctx by Transaction, or db scoped to ctx.
func Session(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// Transaction runs fn in a transaction. Sessions opened from the ctx passed to fn join it, and nested calls
// reuse the outer transaction.
func Transaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return errors.WithStack(db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}))
}
