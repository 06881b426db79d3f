package config

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func (c DatabaseConfig) DSN() string {
	sslmode := "require"
	if c.SSLMode == "disable" {
		sslmode = "disable"
	}

	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Pass +
		" dbname=" + c.Name +
		" sslmode=" + sslmode
}

func NewDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	return OpenDatabase(cfg.DSN())
}

func OpenDatabase(dsn string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 newLogger,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
