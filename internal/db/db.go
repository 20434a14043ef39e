package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/evmco/dealer-backoffice/internal/models"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AllModels lists every persisted entity in AutoMigrate order (referenced
// tables first). Shared with the test fixtures.
func AllModels() []interface{} {
	return []interface{}{
		&models.Dealer{}, &models.User{}, &models.Customer{},
		&models.VehicleType{}, &models.VehicleTypeDetail{},
		&models.Quote{}, &models.QuotationDetail{},
		&models.PaymentPlan{}, &models.Order{},
		&models.ImportRequest{}, &models.Feedback{}, &models.Promotion{},
	}
}

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Always print masked DSN once for diagnostics (before migrations for visibility)
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)
	// If MIGRATIONS=1 (or true) we run sql migrations via golang-migrate; otherwise keep AutoMigrate fallback (dev convenience)
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range AllModels() {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"dealers", "users", "quotes", "orders"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

func seed(db *gorm.DB) {
	// Payment plans
	basePlans := []models.PaymentPlan{
		{Name: "12 months", Months: 12, InterestRate: 0.05},
		{Name: "24 months", Months: 24, InterestRate: 0.06},
		{Name: "36 months", Months: 36, InterestRate: 0.07},
	}
	for _, p := range basePlans {
		var existing models.PaymentPlan
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&p)
		}
	}
	// Admin account, credentials from env (dev only)
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email != "" && pass != "" {
		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == gorm.ErrRecordNotFound {
			hash, herr := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
			if herr == nil {
				db.Create(&models.User{Email: email, Password: string(hash), Name: "Administrator", Role: models.RoleAdmin})
			}
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
