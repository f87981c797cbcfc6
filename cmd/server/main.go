package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lojf/regform/internal/config"
	"github.com/lojf/regform/internal/db"
	"github.com/lojf/regform/internal/handlers"
	"github.com/lojf/regform/internal/logger"
	"github.com/lojf/regform/internal/notify"
	svc "github.com/lojf/regform/internal/services"
	"github.com/lojf/regform/internal/store"
	"github.com/lojf/regform/internal/web"
)

func main() {
	cfgPath := flag.String("config", getEnv("CONFIG_PATH", "config.yaml"), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}
	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Format == "pretty"})

	loc, _ := cfg.Location() // validated by config.Load
	handlers.SetLocation(loc)

	// Creates the database file on first start.
	if err := db.Init(cfg.DSN()); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("db init")
	}
	logger.Info().Str("path", cfg.Database.Path).Msg("database ready (sqlite)")

	st := store.NewGormStore(db.Conn())

	bg, stopBg := context.WithCancel(context.Background())
	defer stopBg()
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != 0 {
		tg := notify.NewClient(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
		notify.Install(tg)
		logger.Info().Int64("chat_id", cfg.Notify.TelegramChatID).Msg("telegram notifications on")
		if cfg.Notify.DigestAt != "" {
			if err := notify.StartDigestLoop(bg, tg, st, cfg.Notify.DigestAt, loc); err != nil {
				logger.Fatal().Err(err).Msg("digest")
			}
		}
	}

	hasher := svc.Plaintext
	if cfg.Security.HashPasswords {
		hasher = svc.Bcrypt
	} else {
		logger.Warn().Msg("passwords are stored in plaintext (security.hash_passwords=false)")
	}

	app := &handlers.App{
		Reg: svc.NewRegistration(st,
			svc.WithClock(func() time.Time { return time.Now().In(loc) }),
			svc.WithHasher(hasher),
		),
		Logs:          svc.NewLogBook(),
		Roster:        st,
		Admins:        handlers.NewAdminSessions(),
		MinBirthYear:  cfg.App.MinBirthYear,
		AdminPassword: cfg.Security.AdminPassword,
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           web.Router(app, web.Options{AllowedOrigins: cfg.Origins()}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("student registration listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopBg()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownAfter())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	if err := db.Close(); err != nil {
		logger.Error().Err(err).Msg("db close")
	}
	logger.Info().Msg("bye")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
