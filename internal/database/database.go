package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the PostgreSQL pool. TranslateError turns unique violations
// into gorm.ErrDuplicatedKey so repositories can map them to conflicts.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return db, nil
}

// constraints are created after AutoMigrate; GORM tags cannot express
// partial indexes reliably.
var constraints = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reports_one_pending
		ON reports (reporter_user_id, action_type, target_id)
		WHERE status = 'PENDING'`,
	`DO $$ BEGIN
		ALTER TABLE reports ADD CONSTRAINT chk_reports_single_target CHECK (
			(action_type = 'REPORT_POST' AND target_post_id IS NOT NULL AND target_comment_id IS NULL) OR
			(action_type = 'REPORT_COMMENT' AND target_comment_id IS NOT NULL AND target_post_id IS NULL)
		);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		ALTER TABLE penalties ADD CONSTRAINT chk_penalties_expiry CHECK (
			(penalty_type = 'TEMP_BAN' AND expires_at IS NOT NULL AND expires_at > issued_at) OR
			(penalty_type <> 'TEMP_BAN' AND expires_at IS NULL)
		);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
}

// Migrate creates the moderation tables plus the external tables we read
// when they are missing (local development).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.TournamentParticipant{},
		&models.SolvedProblem{},
		&models.Report{},
		&models.Penalty{},
		&models.EngagementEdge{},
		&models.Achievement{},
		&models.AchievementGrant{},
		&models.SystemLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
