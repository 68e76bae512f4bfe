package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const bucketTable = "buckets"

// bucketsTable is the single table behind the SQLite backend: one row per
// bucket holding its JSON document.
func bucketsTable() *schema.Table {
	name := &schema.Column{Name: "name", Type: field.TypeString, Size: 255}
	data := &schema.Column{Name: "data", Type: field.TypeBytes}
	updated := &schema.Column{Name: "updated_at", Type: field.TypeInt64}
	return &schema.Table{
		Name:       bucketTable,
		Columns:    []*schema.Column{name, data, updated},
		PrimaryKey: []*schema.Column{name},
	}
}

// sqliteKV stores buckets as rows in a local SQLite file.
type sqliteKV struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	kv, err := openSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return New(kv), nil
}

func openSQLite(dsn string) (*sqliteKV, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps the
	// per-connection pragmas below in effect for every query.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	m, err := schema.NewMigrate(drv)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	if err := m.Create(context.Background(), bucketsTable()); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &sqliteKV{db: db, drv: drv}, nil
}

func (s *sqliteKV) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (s *sqliteKV) Load(ctx context.Context, bucket string) ([]byte, error) {
	b := s.builder()
	query, args := b.Select("data").
		From(b.Table(bucketTable)).
		Where(entsql.EQ("name", bucket)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("load %s: %w", bucket, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, fmt.Errorf("scan %s: %w", bucket, err)
	}
	return data, rows.Err()
}

func (s *sqliteKV) Save(ctx context.Context, bucket string, data []byte) error {
	query, args := s.builder().Insert(bucketTable).
		Columns("name", "data", "updated_at").
		Values(bucket, data, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s: %w", bucket, err)
	}
	return nil
}

func (s *sqliteKV) Delete(ctx context.Context, bucket string) error {
	query, args := s.builder().Delete(bucketTable).
		Where(entsql.EQ("name", bucket)).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %s: %w", bucket, err)
	}
	return nil
}

func (s *sqliteKV) Close() error {
	return s.drv.Close()
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. UPSKILL_DB environment variable
// 2. $XDG_DATA_HOME/upskill/upskill.db
// 3. ~/.local/share/upskill/upskill.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("UPSKILL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "upskill.db")
	return p, EnsureDir(p)
}

// DataDir returns $XDG_DATA_HOME/upskill, or ~/.local/share/upskill.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "upskill"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
