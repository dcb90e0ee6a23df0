package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"hackathon-backend/config"
	"hackathon-backend/events"
	"hackathon-backend/handler"
	"hackathon-backend/internal/background"
	"hackathon-backend/jwt"
	"hackathon-backend/log"
	"hackathon-backend/mail"
	"hackathon-backend/router"
	"hackathon-backend/store"
	"hackathon-backend/store/memory"
	"hackathon-backend/store/mongostore"
)

func main() {
	inMemory := flag.Bool("memory", false, "keep all data in memory instead of MongoDB")
	flag.Parse()
	log.EnsureLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Logger.Fatal("invalid configuration", zap.Error(err))
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	var (
		st     *store.Store
		client *mongo.Client
	)
	if *inMemory {
		log.Logger.Warn("using the in-memory store, data is lost on exit")
		st = memory.New().Store()
	} else {
		client, err = mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Logger.Fatal("failed connecting to database", zap.Error(err))
		}

		st, err = mongostore.New(ctx, client.Database(cfg.Database))
		if err != nil {
			log.Logger.Fatal("failed preparing database", zap.Error(err))
		}
	}

	var sender mail.Sender = mail.NewLogSender()
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		sender = mail.NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)
	} else {
		log.Logger.Warn("mailgun is not configured, emails are only logged")
	}

	var (
		publisher events.Publisher = events.Nop()
		bus       *events.Bus
	)
	if cfg.RabbitMQURL != "" {
		bus, err = events.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Logger.Fatal("failed connecting to rabbitmq", zap.Error(err))
		}
		publisher = bus
	}

	settings := handler.NewSettingsHandler(st.Settings)
	if err := settings.CreateSingleton(ctx); err != nil {
		log.Logger.Fatal("failed creating settings", zap.Error(err))
	}

	event := handler.NewEventHandler(st.Events, cfg.EventName)
	if _, err := event.EnsureCurrentEvent(ctx); err != nil {
		log.Logger.Fatal("failed creating current event", zap.Error(err), zap.String("name", cfg.EventName))
	}

	bg := &background.Group{}
	engine := router.New(&router.Deps{
		Store:          st,
		Tokens:         jwt.New(cfg.AuthSecret, cfg.EmailVerificationSecret, cfg.PasswordResetSecret),
		Mailer:         mail.New(sender, cfg.FrontendURL),
		Events:         publisher,
		Background:     bg,
		Settings:       settings,
		Event:          event,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Logger.Info(fmt.Sprintf("Listening on port: %s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Logger.Error("server error", zap.Error(err))
	case sig := <-quit:
		log.Logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Logger.Error("server shutdown error", zap.Error(err))
	}
	if err := bg.Wait(shutdownCtx); err != nil {
		log.Logger.Error("pending background tasks abandoned", zap.Error(err))
	}
	if bus != nil {
		if err := bus.Close(); err != nil {
			log.Logger.Error("rabbitmq close error", zap.Error(err))
		}
	}
	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Logger.Error("database disconnect error", zap.Error(err))
		}
	}

	log.Logger.Info("graceful shutdown complete")
}
