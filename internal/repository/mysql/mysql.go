package mysql

import (
	"time"

	"Team_Social/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options 连接池参数
type Options struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// Open 建立 MySQL 连接；TranslateError 让唯一键冲突统一成 gorm.ErrDuplicatedKey
func Open(opt Options) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(opt.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opt.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opt.MaxOpenConns)
	}
	if opt.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opt.MaxIdleConns)
	}
	if opt.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opt.MaxLifetime)
	}
	return db, nil
}

// AutoMigrate 建表，顺序按外键依赖
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Team{},
		&model.Profile{},
		&model.Post{},
		&model.Follow{},
		&model.SocialOutbox{},
	)
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 1
	}
	if limit > 50 {
		return 50
	}
	return limit
}
