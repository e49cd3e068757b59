package initialize

import (
	"context"
	"fmt"
	"net/http"

	"cardsapi/app/controllers"
	"cardsapi/app/db"
	jwtutil "cardsapi/app/jwt"
	"cardsapi/app/middleware"
	"cardsapi/app/models"
	"cardsapi/app/repo"
	"cardsapi/app/services"
	"cardsapi/app/tokens"
	"cardsapi/config"
	"cardsapi/global"
	"cardsapi/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Router http.Handler
	Cards  *services.CardService
	Users  *services.UserService
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	SetLogLevel(cfg.LogLevel)
	cfg.WatchLogLevel(SetLogLevel)

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := gdb.AutoMigrate(&models.User{}, &models.Card{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Redis is optional; without it logout revocation is a no-op.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			global.Logger.Warn().Err(err).Msg("redis unreachable, token revocation disabled")
			rdb = nil
		}
	}
	denylist := tokens.NewDenylist(rdb)

	// Services
	userRepo := repo.NewUserRepository(gdb)
	cardRepo := repo.NewCardRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	cardSvc := services.NewCardService(cardRepo)
	if err := userSvc.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		global.Logger.Warn().Err(err).Msg("could not seed admin user")
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	authCtrl := controllers.NewAuthController(userSvc, signer, denylist)
	cardCtrl := controllers.NewCardController(cardSvc)
	mw := &middleware.Auth{Signer: signer, Denylist: denylist}

	// Router
	h := router.NewRouter(cardCtrl, authCtrl, mw)
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Cards: cardSvc, Users: userSvc}, nil
}
