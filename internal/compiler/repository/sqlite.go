package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"scene-compiler/internal/compiler/models"

	"github.com/google/uuid"
)

// ============================================================
// SQLite Repository
// ============================================================

// Repository keeps compiled scenes until the scene-authoring host picks
// them up.
type Repository struct {
	db *sql.DB
}

// StoredScene is one persisted compilation.
type StoredScene struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"created_at"`
	Output    *models.Output `json:"output"`
}

// SceneSummary is a list row without the output payload.
type SceneSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Walls     int    `json:"walls"`
	Lights    int    `json:"lights"`
	Notes     int    `json:"notes"`
	CreatedAt string `json:"created_at"`
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the schema migration.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Save stores a compiled output under a fresh id.
func (r *Repository) Save(ctx context.Context, name string, out *models.Output) (string, error) {
	if out == nil {
		return "", fmt.Errorf("output is nil")
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode output: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO scenes (id, name, walls, lights, notes, output)
        VALUES (?, ?, ?, ?, ?, ?)
    `, id, name, len(out.Walls), len(out.Lights), len(out.Notes), string(data))
	if err != nil {
		return "", fmt.Errorf("insert scene: %w", err)
	}
	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*StoredScene, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, created_at, output
        FROM scenes
        WHERE id = ?
    `, id)

	var s StoredScene
	var data string
	if err := row.Scan(&s.ID, &s.Name, &s.CreatedAt, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSceneNotFound
		}
		return nil, err
	}

	s.Output = &models.Output{}
	if err := json.Unmarshal([]byte(data), s.Output); err != nil {
		return nil, fmt.Errorf("decode scene %s: %w", id, err)
	}
	return &s, nil
}

func (r *Repository) List(ctx context.Context) ([]SceneSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, walls, lights, notes, created_at
        FROM scenes
        ORDER BY created_at DESC, rowid DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []SceneSummary{}
	for rows.Next() {
		var s SceneSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Walls, &s.Lights, &s.Notes, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrSceneNotFound
	}
	return nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the sqlite database at dbPath.
// The caller must import the ncruces driver.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
