package db

import (
	"context"

	"github.com/soartravel/soar/errors"
	"gorm.io/gorm"
)

func AutoMigrate(ctx context.Context, db *gorm.DB, models ...any) error {
	if err := Session(ctx, db).AutoMigrate(models...); err != nil {
		return errors.Wrapf(err, "failed to migrate %d models", len(models))
	}
	return nil
}
