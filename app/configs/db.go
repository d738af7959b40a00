package configs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func (e ENV) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBPort,
		e.DBName,
	)
}

// GormConfig is shared with tests so unique violations surface as gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

func OpenConnection(env ENV) (*gorm.DB, error) {
	dsn := env.DSN()

	var lastErr error
	for i := 0; i < env.DBMaxRetries; i++ {
		log.Printf("Attempting to connect to database %s@%s:%s (Attempt %d/%d)", env.DBName, env.DBHost, env.DBPort, i+1, env.DBMaxRetries)
		db, err := gorm.Open(mysql.Open(dsn), GormConfig())
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(30 * time.Minute)
					log.Println("✅ Database connection successful!")
					return db, nil
				}
			}
			lastErr = pingErr
			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, env.DBRetryDelay)
		} else {
			lastErr = err
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, env.DBRetryDelay)
		}

		time.Sleep(env.DBRetryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", env.DBMaxRetries, lastErr)
}

// OpenLazy returns a handle that only connects when first used, so a server can start while
// the database is down and serve what does not depend on it.
func OpenLazy(env ENV) (*gorm.DB, error) {
	cfg := GormConfig()
	cfg.DisableAutomaticPing = true
	return gorm.Open(mysql.New(mysql.Config{
		DSN:                       env.DSN(),
		SkipInitializeWithVersion: true,
	}), cfg)
}
