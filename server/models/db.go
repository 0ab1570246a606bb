package models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/RASHMI-2005/hospital-management-system/server/logger"
	"github.com/RASHMI-2005/hospital-management-system/shared"
	"github.com/RASHMI-2005/hospital-management-system/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "hospital.db"

var logg = logger.NewLogger()
var db *gorm.DB

// InitializeDb opens the configured database and migrates the schema.
func InitializeDb(dbConfig shared.DatabaseConfig, rootDir string) error {
	var dialector gorm.Dialector

	switch dbConfig.Driver {
	case "postgres":
		dialector = postgres.Open(dbConfig.Postgres.DSN)
	case "sqlite":
		dsn, err := sqliteDSN(dbConfig.Sqlite.PassPhrase, rootDir)
		if err != nil {
			return fmt.Errorf("failed to set sqlite DSN: %v", err)
		}
		dialector = sqliteEncrypt.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %q", dbConfig.Driver)
	}

	var err error
	db, err = gorm.Open(dialector, &gorm.Config{Logger: quietGormLogger()})
	if err != nil {
		return fmt.Errorf("failed to connect database: %v", err)
	}

	return autoMigrate()
}

// InitializeTestDb swaps the package db for an in-memory sqlite store
// with a freshly migrated, empty schema.
func InitializeTestDb() {
	var err error
	db, err = gorm.Open(sqliteEncrypt.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: quietGormLogger(),
	})
	if err != nil {
		logg.Panicf("failed to open test database: %v", err)
	}

	if err = autoMigrate(); err != nil {
		logg.Panicf("failed to migrate test database: %v", err)
	}

	// cache=shared keeps the same store alive across connections within
	// a test binary, so clear out rows left over by earlier tests
	for _, table := range []string{
		"sessions", "laboratory_records", "medical_records",
		"emergency_cases", "patients", "staff", "doctors", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}
}

// DbFilePath returns the on-disk location of the sqlite database,
// creating its parent directory when missing.
func DbFilePath(rootDir string) (string, error) {
	dbDir := filepath.Join(rootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func autoMigrate() error {
	return db.AutoMigrate(
		&User{}, &Session{},
		&Doctor{}, &Staff{}, &Patient{},
		&EmergencyCase{}, &LaboratoryRecord{}, &MedicalRecord{},
	)
}

func sqliteDSN(passPhrase string, rootDir string) (string, error) {
	dbFilePath, err := DbFilePath(rootDir)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbFilePath,
		passPhrase,
	), nil
}

func quietGormLogger() gormLogger.Interface {
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			LogLevel:                  gormLogger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
