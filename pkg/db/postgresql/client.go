package postgresql

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	onceDb   sync.Once
	instance *gorm.DB
	errDb    error
)

type Options struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	// Verbose logs every SQL statement.
	Verbose bool
}

func DSN(o Options) string {
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s",
		o.Host,
		o.Port,
		o.User,
		o.Database,
		o.Password,
		sslMode,
	)
}

// Open connects to Postgres and checks the connection with a ping.
func Open(o Options) (*gorm.DB, error) {
	level := logger.Warn
	if o.Verbose {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(DSN(o)), &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping: %w", err)
	}

	return db, nil
}

// GetInstance returns the process-wide connection, opening it on first use.
func GetInstance(o Options) (*gorm.DB, error) {
	onceDb.Do(func() {
		instance, errDb = Open(o)
	})

	return instance, errDb
}
