package db

import (
	"fmt"
	"strings"

	"realestate-server/confs"
	"realestate-server/entities"
	"realestate-server/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the configured database, sizes the pool and migrates the schema.
func Connect(cfg confs.DatabaseConfig) (Database, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		logger.Log.Infof("Opening sqlite database at %s...", cfg.SQLitePath)
		dialector = sqlite.Open(sqliteDSN(cfg.SQLitePath))
	default:
		dsn, err := postgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		dialector = postgres.Open(dsn)
	}

	database, err := open(dialector, gormlogger.Warn)
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.GetDB().DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(0)
	}

	logger.Log.Info("Database connection established successfully!")

	logger.Log.Info("Running database migrations...")
	if err := Migrate(database); err != nil {
		return nil, err
	}
	logger.Log.Info("Database migrations completed successfully!")

	return database, nil
}

// OpenSQLite opens and migrates a sqlite database. Used for local runs and tests;
// pass ":memory:" for a throwaway database.
func OpenSQLite(path string) (Database, error) {
	database, err := open(sqlite.Open(sqliteDSN(path)), gormlogger.Silent)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.GetDB().DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// a second connection to ":memory:" would see an empty database
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Migrate creates or updates every table the application owns.
func Migrate(database Database) error {
	err := database.GetDB().AutoMigrate(
		&entities.User{},
		&entities.Project{},
		&entities.Property{},
		&entities.PropertyMedia{},
		&entities.Lead{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func open(dialector gorm.Dialector, level gormlogger.LogLevel) (Database, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Gorm(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &GormDatabase{DB: gdb}, nil
}

func postgresDSN(cfg confs.DatabaseConfig) (string, error) {
	if cfg.URL != "" {
		dsn := cfg.URL
		// hosted databases require TLS unless the URL says otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		logger.Log.Info("Connecting to database using DB_URL...")
		return dsn, nil
	}

	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Password == "" || cfg.Name == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if cfg.Host == "localhost" || cfg.Host == "127.0.0.1" {
		sslMode = "disable"
	}

	logger.Log.Infof("Connecting to database using individual parameters (sslmode=%s)...", sslMode)
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode), nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
