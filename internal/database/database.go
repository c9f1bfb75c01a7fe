package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"health/api/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

const canonicalScheme = "postgres"

// NormalizeURL rewrites generic and driver-qualified Postgres schemes
// (postgresql://, postgresql+psycopg://, postgres+pgx://, ...) to the postgres:// form pgx parses.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("database URL is empty")
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return "", errors.New("database URL has no scheme")
	}

	base, _, _ := strings.Cut(strings.ToLower(scheme), "+")
	switch base {
	case "postgres", "postgresql":
		return canonicalScheme + "://" + rest, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// Open prepares the connection pool. No connection is made until the first query,
// so an unreachable database does not prevent startup.
func Open(cfg config.Config, log zerolog.Logger) (*sql.DB, error) {
	url, err := NormalizeURL(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	connCfg, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if connCfg.RuntimeParams == nil {
		connCfg.RuntimeParams = map[string]string{}
	}
	connCfg.RuntimeParams["application_name"] = cfg.AppName
	connCfg.RuntimeParams["timezone"] = "UTC"

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	log.Info().
		Str("host", connCfg.Host).
		Uint16("port", connCfg.Port).
		Str("database", connCfg.Database).
		Msg("database pool configured")

	return db, nil
}
