package mcdb

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func MakeDSNFromEnv() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_DATABASE"))
}

const maxDBRetries = 5

// MustConnectToDB will attempt to connect to the database maxDBRetries times. If it isn't successful
// after that number of retries then it will call log.Fatalf(), which will cause the server to exit.
// Between retry attempts it will sleep for 3 seconds.
func MustConnectToDB() *gorm.DB {
	var (
		err error
		db  *gorm.DB
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	retryCount := 1
	for {
		db, err = gorm.Open(mysql.Open(MakeDSNFromEnv()), gormConfig)
		switch {
		case err == nil:
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("Failed to open db (%s): %s", MakeDSNFromEnv(), err)
		default:
			retryCount++
			time.Sleep(3 * time.Second)
		}
	}
}

// RunMigrations brings a database up to the current schema. Production runs
// against a database migrated by the main application, so this is only used
// by tests and by fresh sqlite setups.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&mcmodel.User{},
		&mcmodel.Team{},
		&mcmodel.Status{},
		&mcmodel.ExperimentTemplate{},
		&mcmodel.Experiment{},
		&mcmodel.Tag{},
		&mcmodel.ExperimentLink{},
		&mcmodel.ExperimentStep{},
		&mcmodel.Pin{},
		&mcmodel.Upload{},
	)
}
