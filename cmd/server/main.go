package main

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"blog/internal/auth"
	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/handlers"
	"blog/internal/mail"
	"blog/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load config: ", err)
	}

	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		log.Fatal(err)
	}

	dbc, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open sqlite DB: ", err)
	}
	defer dbc.Close()

	if err := db.Migrate(dbc); err != nil {
		log.Fatal("Failed to migrate DB: ", err)
	}
	log.Info("Database ready: ", cfg.DBPath)

	st := store.New(dbc)
	sessions := auth.NewManager(dbc, cfg.SessionTTL)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.MailTo)

	h := handlers.New(st, sessions, mailer, cfg.TemplateDir, log)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.Routes(cfg.StaticDir),

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Infof("listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
