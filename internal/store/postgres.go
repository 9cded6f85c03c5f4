package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS azuretechfacts (
	fact     TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	image    TEXT NOT NULL,
	response TEXT NOT NULL
)`
	findFactSQL   = `SELECT fact, title, image, response FROM azuretechfacts WHERE fact = $1`
	listFactsSQL  = `SELECT fact, title, image, response FROM azuretechfacts ORDER BY fact`
	deleteAllSQL  = `DELETE FROM azuretechfacts`
	insertFactSQL = `INSERT INTO azuretechfacts (fact, title, image, response) VALUES ($1, $2, $3, $4)`
)

// PostgresStore keeps facts in the azuretechfacts table.
type PostgresStore struct {
	db *sql.DB
}

func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the facts table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating %s table: %w", Collection, err)
	}
	return nil
}

func (s *PostgresStore) FindFact(ctx context.Context, key string) (*Fact, error) {
	var f Fact
	err := s.db.QueryRowContext(ctx, findFactSQL, key).Scan(&f.Key, &f.Title, &f.Image, &f.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying fact %q: %w", key, err)
	}
	return &f, nil
}

func (s *PostgresStore) ListFacts(ctx context.Context) ([]Fact, error) {
	rows, err := s.db.QueryContext(ctx, listFactsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing facts: %w", err)
	}
	defer rows.Close()

	var facts []Fact
	for rows.Next() {
		var f Fact
		if err := rows.Scan(&f.Key, &f.Title, &f.Image, &f.Body); err != nil {
			return nil, fmt.Errorf("scanning fact: %w", err)
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

func (s *PostgresStore) ReplaceAll(ctx context.Context, facts []Fact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteAllSQL); err != nil {
		return fmt.Errorf("deleting facts: %w", err)
	}
	for _, f := range facts {
		if _, err := tx.ExecContext(ctx, insertFactSQL, f.Key, f.Title, f.Image, f.Body); err != nil {
			return fmt.Errorf("inserting fact %q: %w", f.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing facts: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
