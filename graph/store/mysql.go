package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore persists snapshots in MySQL/MariaDB for deployments where
// several instances share one canvas library.
//
// The DSN format is the go-sql-driver one:
//
//	user:password@tcp(localhost:3306)/imageflow?parseTime=true
//
// Never hardcode credentials; read the DSN from the environment:
//
//	store, err := NewMySQLStore(os.Getenv("MYSQL_DSN"))
type MySQLStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLStore connects, configures pooling, and migrates the schema.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	m := &MySQLStore{db: db}
	if err := m.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return m, nil
}

func (m *MySQLStore) createTables(ctx context.Context) error {
	table := `
		CREATE TABLE IF NOT EXISTS workflow_snapshots (
			name VARCHAR(255) NOT NULL PRIMARY KEY,
			data JSON NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := m.db.ExecContext(ctx, table); err != nil {
		return fmt.Errorf("failed to create workflow_snapshots table: %w", err)
	}
	return nil
}

// Save implements Store.
func (m *MySQLStore) Save(ctx context.Context, name string, snap Snapshot) error {
	if err := m.check(); err != nil {
		return err
	}
	data, err := json.Marshal(snap.Strip())
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO workflow_snapshots (name, data)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE data = VALUES(data)
	`
	if _, err := m.db.ExecContext(ctx, query, name, string(data)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load implements Store.
func (m *MySQLStore) Load(ctx context.Context, name string) (Snapshot, error) {
	if err := m.check(); err != nil {
		return Snapshot{}, err
	}

	var data string
	err := m.db.QueryRowContext(ctx,
		"SELECT data FROM workflow_snapshots WHERE name = ?", name).Scan(&data)
	if err == sql.ErrNoRows {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// Delete implements Store.
func (m *MySQLStore) Delete(ctx context.Context, name string) error {
	if err := m.check(); err != nil {
		return err
	}

	res, err := m.db.ExecContext(ctx,
		"DELETE FROM workflow_snapshots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List implements Store.
func (m *MySQLStore) List(ctx context.Context) ([]string, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	rows, err := m.db.QueryContext(ctx,
		"SELECT name FROM workflow_snapshots ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return names, nil
}

// Close closes the database connection. Calling Close more than once is
// a no-op.
func (m *MySQLStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.db.Close()
}

// Ping verifies the database connection is alive.
func (m *MySQLStore) Ping(ctx context.Context) error {
	if err := m.check(); err != nil {
		return err
	}
	return m.db.PingContext(ctx)
}

func (m *MySQLStore) check() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return fmt.Errorf("store is closed")
	}
	return nil
}
