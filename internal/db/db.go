package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/config"
	"github.com/bottegalab/gestionale/internal/models"
)

var conn *gorm.DB

func Init(path string) error {
	var err error
	conn, err = gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		return err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(conn); err != nil {
		return err
	}

	config.Logger().Info("database ready (sqlite)")
	return nil
}

// Migrate is separate from Init so tests can run it against their own DB.
func Migrate(g *gorm.DB) error {
	if err := g.AutoMigrate(
		&models.CompanyProfile{},
		&models.Parent{},
		&models.Child{},
		&models.Workshop{},
		&models.Registration{},
		&models.Payment{},
		&models.OperationalCost{},
		&models.Quote{},
		&models.Invoice{},
		&models.Supplier{},
		&models.Location{},
		&models.Campaign{},
		&models.ReminderSetting{},
		&models.ReminderLog{},
	); err != nil {
		return err
	}

	// Composite index GORM doesn't auto-create from struct tags.
	return g.Exec("CREATE INDEX IF NOT EXISTS idx_reg_child_workshop ON registrations(child_id, workshop_id)").Error
}

func Conn() *gorm.DB {
	return conn
}
