package db

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// InitMySQL opens the MySQL connection pool
func InitMySQL(dsn string) error {
	// TranslateError maps driver duplicate-key errors to gorm.ErrDuplicatedKey
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	gormDB = database
	log.Println("✓ MySQL connected successfully")
	return nil
}

// DB returns the shared gorm handle
func DB() *gorm.DB {
	return gormDB
}

// Close closes the underlying connection pool
func Close() error {
	if gormDB == nil {
		return nil
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
