package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gigportal/internal/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(
		&models.News{},
		&models.BlogPost{},
		&models.Gallery{},
		&models.DocumentFile{},
		&models.ArchiveIssue{},
		&models.CrossPostLog{},
		&models.Rubric{},
		&models.AppSetting{},
	); err != nil {
		return nil, err
	}
	return gdb, nil
}
