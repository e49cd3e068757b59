package db

import (
	"fmt"

	"cardsapi/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the card store. MySQL is the deployment target; sqlite
// keeps local runs and tests free of external services.
func Connect(cfg config.DB) (*gorm.DB, error) {
	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey so the services can map them.
	switch cfg.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{TranslateError: true})
	case "mysql", "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	}
	return nil, fmt.Errorf("unsupported db driver: %s", cfg.Driver)
}
