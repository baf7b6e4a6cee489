// persistence/gorm_postgresql.go
package persistence

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wfunc/drawguess/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormPostgreSQL stores game records in postgres through gorm.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return NewGormDatabase(db)
}

// NewGormDatabase wraps an open gorm handle and migrates the archive table.
func NewGormDatabase(db *gorm.DB) (*GormPostgreSQL, error) {
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormPostgreSQL{db: db}, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.GameRecord{})
}

func (p *GormPostgreSQL) SaveGameRecord(ctx context.Context, record *models.GameRecord) error {
	return p.db.WithContext(ctx).Create(record).Error
}

func (p *GormPostgreSQL) RecentGameRecords(ctx context.Context, limit int) ([]models.GameRecord, error) {
	var records []models.GameRecord
	err := p.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (p *GormPostgreSQL) GameRecordsByRoom(ctx context.Context, roomCode string) ([]models.GameRecord, error) {
	var records []models.GameRecord
	err := p.db.WithContext(ctx).
		Where("room_code = ?", roomCode).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrRecordNotFound
	}
	return records, nil
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
