package main

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rs/cors"
	"go.uber.org/zap"

	accounts "github.com/KurtVarcoe/accounts-api"
	"github.com/KurtVarcoe/accounts-api/auth"
	"github.com/KurtVarcoe/accounts-api/config"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("connecting to mongo", zap.Error(err))
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("pinging mongo", zap.Error(err))
	}

	users := client.Database(cfg.DBName).Collection("users")

	tokens := auth.NewTokenService([]byte(cfg.SigningKey))
	svc := accounts.NewService(accounts.NewMongoUserRepository(users), tokens)

	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(accounts.NewRouter(svc, tokens))
	handler = accounts.RequestLogger(handler, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("server started", zap.String("port", cfg.Port))
	logger.Fatal("server stopped", zap.Error(server.ListenAndServe()))
}
