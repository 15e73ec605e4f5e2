package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"notesapp/internal/note/model"
	"notesapp/pkg/logger"
)

var ErrUnknownDriver = errors.New("unknown database driver")

type Repository interface {
	List(ctx context.Context) ([]model.Note, error)
	Create(ctx context.Context, note model.Note) error
}

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
	MySQL    Dialect = "mysql"
)

func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(driver); d {
	case Postgres, SQLite, MySQL:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

// rebind rewrites ? placeholders into the form the dialect expects.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (d Dialect) schema() string {
	switch d {
	case Postgres:
		return `CREATE TABLE IF NOT EXISTS notes (
	id VARCHAR(26) PRIMARY KEY,
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`
	case MySQL:
		return `CREATE TABLE IF NOT EXISTS notes (
	id VARCHAR(26) PRIMARY KEY,
	content TEXT NOT NULL,
	created_at DATETIME(6) NOT NULL
)`
	default:
		return `CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`
	}
}

type NoteRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewNoteRepository(db *sql.DB, dialect Dialect) *NoteRepository {
	return &NoteRepository{DB: db, Dialect: dialect}
}

func (r *NoteRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, r.Dialect.schema())
	if err != nil {
		logger.Sugar.Errorf("Failed to migrate notes table: %v", err)
	}
	return err
}

func (r *NoteRepository) Create(ctx context.Context, note model.Note) error {
	_, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`INSERT INTO notes (id, content, created_at) VALUES (?, ?, ?)`),
		note.ID, note.Text, note.CreatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create note %s: %v", note.ID, err)
	}
	return err
}

func (r *NoteRepository) List(ctx context.Context) ([]model.Note, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, content, created_at FROM notes ORDER BY created_at ASC, id ASC")
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.CreatedAt); err != nil {
			logger.Sugar.Errorf("Failed to scan note: %v", err)
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		logger.Sugar.Errorf("Failed to iterate notes: %v", err)
		return nil, err
	}
	return notes, nil
}
