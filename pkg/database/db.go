package database

import (
	"fmt"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table: one row per key per day
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	SessionsOpened int    `gorm:"default:0" json:"sessions_opened"`
	Submissions    int    `gorm:"default:0" json:"submissions"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UsageDelta is the increment applied to today's usage row
type UsageDelta struct {
	Requests       int
	SessionsOpened int
	Submissions    int
}

// Open connects to postgres when a URL is configured, sqlite otherwise,
// and migrates the schema.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.URL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true,
		})
	} else {
		dialector = sqlite.Open(cfg.Path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}

// RecordUsage adds delta to today's usage row for keyID in a single upsert
func RecordUsage(db *gorm.DB, keyID uint, day time.Time, delta UsageDelta) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("request_count + ?", delta.Requests),
			"sessions_opened": gorm.Expr("sessions_opened + ?", delta.SessionsOpened),
			"submissions":     gorm.Expr("submissions + ?", delta.Submissions),
		}),
	}).Create(&APIUsage{
		KeyID:          keyID,
		Date:           day.Format("2006-01-02"),
		RequestCount:   delta.Requests,
		SessionsOpened: delta.SessionsOpened,
		Submissions:    delta.Submissions,
	}).Error
}

// UsageHistory returns the most recent usage rows for keyID, newest first
func UsageHistory(db *gorm.DB, keyID uint, days int) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(days).Find(&usage).Error
	return usage, err
}

// RequestsOn returns the request count recorded for keyID on day
func RequestsOn(db *gorm.DB, keyID uint, day time.Time) (int, error) {
	var usage APIUsage
	err := db.Where("key_id = ? AND date = ?", keyID, day.Format("2006-01-02")).Limit(1).Find(&usage).Error
	return usage.RequestCount, err
}
