package app

import (
	"context"
	"log"
	"os"
	"time"

	"workconnect/internal/config"
	"workconnect/internal/database"
	"workconnect/internal/database/migration"
	dbpostgres "workconnect/internal/database/postgres"
	"workconnect/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	// The cache degrades to a bypass when Redis is unreachable; boot continues.
	redisCache := cache.NewRedis(cfg.Redis, logger)

	return &Container{Config: cfg, DB: db, Cache: redisCache, Logger: logger}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
