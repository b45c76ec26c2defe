package postgres

import (
	"context"
	"errors"
	"time"

	"telegram-relay/internal/domain"
	"telegram-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time check to ensure UpdateJournal implements the output port
var _ output.UpdateJournal = (*UpdateJournal)(nil)

// UpdateJournal struct - Secondary/Driven adapter for PostgreSQL.
// Survives restarts, so redeliveries after a cold start are still caught.
type UpdateJournal struct {
	dbGorm *gorm.DB
	ttl    time.Duration
	now    func() time.Time
}

// NewUpdateJournal func - Creates new PostgreSQL journal and migrates its table
func NewUpdateJournal(dbGorm *gorm.DB, ttl time.Duration) (*UpdateJournal, error) {
	logrus.Info("Migrate database ...")
	if err := domain.MigrateDatabase(dbGorm); err != nil {
		return nil, err
	}
	return &UpdateJournal{
		dbGorm: dbGorm,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// MarkProcessed func - Inserts the update ID; an existing fresh row means a redelivery
func (p *UpdateJournal) MarkProcessed(ctx context.Context, update domain.Update) (bool, error) {
	now := p.now()
	row := domain.ProcessedUpdate{
		UpdateID:  update.ID,
		Kind:      string(update.Kind),
		ChatID:    update.ChatIDForLog(),
		CreatedAt: now,
	}

	tx := p.dbGorm.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "update_id"}}, DoNothing: true}).
		Create(&row)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return false, tx.Error
	}
	if tx.RowsAffected == 1 {
		return true, nil
	}

	// row exists: only a stale one counts as new, and then it is refreshed
	refresh := p.dbGorm.WithContext(ctx).
		Model(&domain.ProcessedUpdate{}).
		Where("update_id = ? AND created_at < ?", update.ID, now.Add(-p.ttl)).
		Updates(map[string]interface{}{
			"created_at": now,
			"kind":       row.Kind,
			"chat_id":    row.ChatID,
		})
	if refresh.Error != nil {
		logrus.Errorln(refresh.Error)
		return false, refresh.Error
	}
	return refresh.RowsAffected == 1, nil
}

// Prune func - Deletes rows recorded before the cutoff
func (p *UpdateJournal) Prune(ctx context.Context, before time.Time) (int64, error) {
	tx := p.dbGorm.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&domain.ProcessedUpdate{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// Ping func - Checks the database connection
func (p *UpdateJournal) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	if sqlDB == nil {
		return errors.New("database handle is nil")
	}
	return sqlDB.PingContext(ctx)
}
