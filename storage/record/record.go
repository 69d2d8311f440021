// Package record persists metadata rows for every asset family plus the
// record-only resources (video links, admin accounts). It speaks plain
// database/sql and supports mysql, postgres and sqlite behind one store.
package record

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/indieinfra/vitrine/config"
	storageutil "github.com/indieinfra/vitrine/storage/util"
)

type placeholderStyle int

const (
	placeholderQuestion placeholderStyle = iota
	placeholderDollar
)

type Store struct {
	db          *sql.DB
	driverName  string
	placeholder placeholderStyle
	tablePrefix string
}

func NewStore(cfg *config.Record) (*Store, error) {
	store, err := newStoreWithDB(cfg, nil)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(store.driverName, cfg.DSN)
	if err != nil {
		return nil, err
	}

	store.db = db

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("record store unreachable: %w", err)
	}

	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func newStoreWithDB(cfg *config.Record, db *sql.DB) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("record config is nil")
	}

	driverName, err := resolveSQLDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	prefix := ""
	if cfg.TablePrefix != nil {
		prefix = *cfg.TablePrefix
	}

	placeholder := placeholderQuestion
	if driverName == "pgx" {
		placeholder = placeholderDollar
	}

	return &Store{
		db:          db,
		driverName:  driverName,
		placeholder: placeholder,
		tablePrefix: prefix,
	}, nil
}

func resolveSQLDriverName(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "postgres":
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	case "sqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported sql driver %q", driver)
	}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Store) table(name string) string {
	return storageutil.DeriveTableName(s.tablePrefix, name)
}

func (s *Store) placeholderFor(index int) string {
	if s.placeholder == placeholderDollar {
		return fmt.Sprintf("$%d", index)
	}

	return "?"
}

// idColumn returns the auto-increment primary key DDL for the active engine.
func (s *Store) idColumn() string {
	switch s.driverName {
	case "pgx":
		return "id BIGSERIAL PRIMARY KEY"
	case "mysql":
		return "id BIGINT PRIMARY KEY AUTO_INCREMENT"
	default:
		return "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

func (s *Store) initSchema(ctx context.Context) error {
	for _, query := range s.schemaQueries() {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}

	return nil
}

func (s *Store) schemaQueries() []string {
	id := s.idColumn()

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
%s,
name VARCHAR(100) NOT NULL,
slug VARCHAR(120) NOT NULL UNIQUE,
cover_image TEXT NOT NULL,
created_at TIMESTAMP NOT NULL,
updated_at TIMESTAMP NOT NULL
)`, s.table("restaurants"), id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
%s,
restaurant_id BIGINT NOT NULL,
image_url TEXT NOT NULL,
created_at TIMESTAMP NOT NULL,
updated_at TIMESTAMP NOT NULL
)`, s.table("restaurant_photos"), id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
%s,
image_url TEXT NOT NULL,
created_at TIMESTAMP NOT NULL,
updated_at TIMESTAMP NOT NULL
)`, s.table("photography_photos"), id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
%s,
title VARCHAR(120) NOT NULL,
video_url TEXT NOT NULL,
created_at TIMESTAMP NOT NULL,
updated_at TIMESTAMP NOT NULL
)`, s.table("video_links"), id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
%s,
admin_name VARCHAR(60) NOT NULL,
email VARCHAR(120) NOT NULL UNIQUE,
password TEXT NOT NULL,
approved BOOLEAN NOT NULL DEFAULT FALSE,
approval_token VARCHAR(64) NOT NULL,
reset_otp VARCHAR(6),
reset_otp_expires TIMESTAMP,
created_at TIMESTAMP NOT NULL
)`, s.table("admins"), id),
	}
}

// insertID executes an insert and returns the generated id. Postgres has no
// LastInsertId, so the query gains a RETURNING clause there.
func (s *Store) insertID(ctx context.Context, query string, args ...any) (int64, error) {
	if s.placeholder == placeholderDollar {
		row := s.db.QueryRowContext(ctx, query+" RETURNING id", args...)

		var id int64
		if err := row.Scan(&id); err != nil {
			return 0, err
		}

		return id, nil
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// execExpectingRow runs a statement that targets one row and converts a zero
// rows-affected result into ErrNotFound.
func (s *Store) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
