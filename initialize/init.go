package initialize

import (
	"fmt"
	"net/http"
	"time"

	"timeclock/app/cache"
	"timeclock/app/controllers"
	"timeclock/app/db"
	jwtutil "timeclock/app/jwt"
	"timeclock/app/middleware"
	"timeclock/app/models"
	"timeclock/app/repo"
	"timeclock/app/services"
	"timeclock/config"
	"timeclock/global"
	"timeclock/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg        *config.Config
	DB         *gorm.DB
	Router     http.Handler
	Users      *services.UserService
	Attendance *services.AttendanceService
	Reports    *services.ReportService
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	// Connect DB
	gdb, err := db.Connect(db.Config{Driver: cfg.DB.Driver, Path: cfg.DB.Path, Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	// Migrate
	if err := gdb.AutoMigrate(&models.User{}, &models.Attendance{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Optional redis-backed roster cache
	var roster *cache.Roster
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		global.Rdb = rdb
		roster = cache.NewRoster(rdb, time.Duration(cfg.Redis.RosterTTLSec)*time.Second)
	}

	// Services
	userRepo := repo.NewUserRepository(gdb)
	attRepo := repo.NewAttendanceRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	attSvc := services.NewAttendanceService(attRepo, loc)
	reportSvc := services.NewReportService(attRepo, loc)
	if cfg.Seed.ManagerUsername != "" && cfg.Seed.ManagerPassword != "" {
		if err := userSvc.EnsureManager(cfg.Seed.ManagerUsername, cfg.Seed.ManagerPassword); err != nil {
			global.Logger.Warn().Err(err).Msg("seed manager")
		}
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpHours: cfg.JWT.ExpHours}
	healthCtrl := controllers.NewHealthController()
	authCtrl := controllers.NewAuthController(userSvc, signer)
	attCtrl := controllers.NewAttendanceController(attSvc, reportSvc, roster)
	repCtrl := controllers.NewReportController(reportSvc, attSvc, roster)
	dashCtrl := controllers.NewDashboardController(reportSvc)
	mw := &middleware.Auth{Signer: signer}

	// Router
	h := router.NewRouter(healthCtrl, authCtrl, attCtrl, repCtrl, dashCtrl, mw)
	h = middleware.RequestID(middleware.Logging(h))

	return &App{Cfg: cfg, DB: gdb, Router: h, Users: userSvc, Attendance: attSvc, Reports: reportSvc}, nil
}
