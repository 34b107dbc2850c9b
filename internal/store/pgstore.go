package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dentware/clinicdesk/pkg/database"
)

// PostgresKV stores keys in a gorm-managed kv table, for clinics running
// against a shared database server instead of local files.
type PostgresKV struct {
	db *gorm.DB
}

func NewPostgresKV(db *gorm.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

func (p *PostgresKV) Get(key string) ([]byte, bool, error) {
	var entry database.KVEntry
	err := p.db.First(&entry, "k = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (p *PostgresKV) Set(key string, value []byte) error {
	entry := database.KVEntry{Key: key, Value: value}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (p *PostgresKV) Delete(key string) error {
	if err := p.db.Delete(&database.KVEntry{}, "k = ?", key).Error; err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (p *PostgresKV) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
