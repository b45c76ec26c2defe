package gorm

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB struct
type DB struct {
	Postgres *gorm.DB
}

// DSN builds the libpq connection string
func DSN(host, port, username, pass, dbname string, sslmode bool) string {
	mode := "disable"
	if sslmode {
		mode = "require"
	}
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v connect_timeout=10", host, username, pass, dbname, port, mode)
}

// ConnectToPostgreSQL func
func ConnectToPostgreSQL(host, port, username, pass, dbname string, sslmode bool) (*DB, error) {
	if host == "" && port == "" && dbname == "" {
		return nil, errors.New("cannot estabished the connection")
	}

	pg, err := gorm.Open(postgres.Open(DSN(host, port, username, pass, dbname, sslmode)), &gorm.Config{
		DryRun: false,
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	sqlDB, err := pg.DB()
	if err != nil {
		return nil, err
	}
	// a sleeping instance drops its sockets, keep the pool small and short-lived
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logrus.Infof("Connected to postgres %s:%s/%s", host, port, dbname)
	return &DB{Postgres: pg}, nil
}

// DisconnectPostgres func
func DisconnectPostgres(db *gorm.DB) {
	sqlDb, err := db.DB()
	if err != nil {
		logrus.Error(err)
		return
	}
	err = sqlDb.Close()
	if err != nil {
		logrus.Error(err)
	}
	logrus.Println("Connected with postgres has closed")
}
