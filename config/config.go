package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	// Driver is "mysql" or "sqlite". sqlite is meant for local runs; Path
	// is only read for sqlite.
	Driver string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	Path   string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Admin struct {
	Email    string
	Password string
}

type Config struct {
	HTTP  HTTP
	DB    DB
	Redis Redis
	Admin Admin
	JWT   struct {
		Secret string
		Issuer string
		ExpMin int
	}
	LogLevel string

	v *viper.Viper
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 8080)
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "cardsapi")
	v.SetDefault("db.path", "cardsapi.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("admin.email", "admin@cardsapi.local")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("jwt.issuer", "cardsapi")
	v.SetDefault("jwt.exp_min", 300)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("http.host"), Port: v.GetInt("http.port")},
		DB: DB{
			Driver: v.GetString("db.driver"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
			Path:   v.GetString("db.path"),
		},
		Redis:    Redis{Addr: v.GetString("redis.addr"), Password: v.GetString("redis.password"), DB: v.GetInt("redis.db")},
		Admin:    Admin{Email: v.GetString("admin.email"), Password: v.GetString("admin.password")},
		LogLevel: v.GetString("log.level"),
		v:        v,
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	cfg.JWT.ExpMin = v.GetInt("jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 300
	}
	return cfg, nil
}

// WatchLogLevel re-reads log.level whenever the config file changes on disk
// and hands the new value to fn.
func (c *Config) WatchLogLevel(fn func(level string)) {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(_ fsnotify.Event) {
		level := c.v.GetString("log.level")
		if level != c.LogLevel {
			c.LogLevel = level
			fn(level)
		}
	})
	c.v.WatchConfig()
}
