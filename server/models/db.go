package models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/ldelaney/rolodex/server/logger"
	"github.com/ldelaney/rolodex/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "rolodex.db"

var logg = logger.NewLogger()
var db *gorm.DB

// AutoMigrate opens the encrypted sqlite db & migrates the schema
func AutoMigrate(passPhrase string, dbRootDir string) error {
	err := openDB(passPhrase, dbRootDir)
	if err != nil {
		return err
	}

	return db.AutoMigrate(&User{}, &Contact{}, &PhoneNumber{})
}

// InitializeTestDb points the package at a fresh in-memory db.
// Each call wipes whatever the previous test created.
func InitializeTestDb() {
	var err error

	db, err = gorm.Open(sqliteEncrypt.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		logg.Panicf("failed to open test database: %v", err)
	}

	if err = db.AutoMigrate(&User{}, &Contact{}, &PhoneNumber{}); err != nil {
		logg.Panicf("failed to migrate test database: %v", err)
	}

	db.Exec("DELETE FROM phone_numbers")
	db.Exec("DELETE FROM contacts")
	db.Exec("DELETE FROM users")
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func openDB(passPhrase string, dbRootDir string) error {
	dbDSNVal, err := dbDSN(passPhrase, dbRootDir)
	if err != nil {
		return errors.Wrap(err, "failed to set sqlite DSN")
	}

	db, err = gorm.Open(sqliteEncrypt.Open(dbDSNVal), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return errors.Wrap(err, "failed to connect database")
	}

	return nil
}

func dbDSN(passPhrase string, dbRootDir string) (string, error) {
	dbDir, err := DbDirectory(dbRootDir)
	if err != nil {
		return "", err
	}

	dbFilePath := filepath.Join(dbDir, DB_NAME)

	return fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbFilePath,
		passPhrase,
	), nil
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}
