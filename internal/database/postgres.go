package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/d-rovere/TherapyDeskBack/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

var DB *pgxpool.Pool

func ConnectDB(cfg *config.Config) error {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("unable to parse database config: %v", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	DB, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := DB.Ping(context.Background()); err != nil {
		return fmt.Errorf("unable to ping database: %v", err)
	}

	log.Printf("Connected to PostgreSQL (pool %d-%d)", cfg.DBMinConns, cfg.DBMaxConns)
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
