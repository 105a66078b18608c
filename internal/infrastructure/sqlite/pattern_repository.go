package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/rexy/internal/library"
)

const patternColumns = `id, guid, name, pattern, flags, subject, replacement, description, created_at, updated_at`

// patternRepository implements library.Repository using SQLite.
type patternRepository struct {
	db *sql.DB
}

func newPatternRepository(db *sql.DB) *patternRepository {
	return &patternRepository{db: db}
}

var _ library.Repository = (*patternRepository)(nil)

func scanPattern(scanner interface{ Scan(...any) error }) (*PatternModel, error) {
	var model PatternModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Name, &model.Pattern, &model.Flags,
		&model.Subject, &model.Replacement, &model.Description,
		&model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// Save inserts new entries and updates persisted ones.
func (r *patternRepository) Save(ctx context.Context, entry *library.Entry) error {
	model := toPatternModel(entry)

	if !entry.IsPersisted() {
		result, err := r.db.ExecContext(ctx,
			`INSERT INTO patterns (
				guid, name, pattern, flags, subject, replacement, description, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			model.GUID, model.Name, model.Pattern, model.Flags, model.Subject,
			model.Replacement, model.Description, model.CreatedAt, model.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return &library.DuplicateNameError{Name: model.Name}
			}
			return fmt.Errorf("failed to insert pattern: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		entry.SetID(id)
		return nil
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE patterns SET
			name = ?, pattern = ?, flags = ?, subject = ?, replacement = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		model.Name, model.Pattern, model.Flags, model.Subject, model.Replacement,
		model.Description, model.UpdatedAt, model.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &library.DuplicateNameError{Name: model.Name}
		}
		return fmt.Errorf("failed to update pattern: %w", err)
	}
	return requireAffected(result, model.Name)
}

// FindByName retrieves an entry by its unique name.
func (r *patternRepository) FindByName(ctx context.Context, name string) (*library.Entry, error) {
	return r.findOne(ctx, `name = ?`, name)
}

// FindByGUID retrieves an entry by its GUID.
func (r *patternRepository) FindByGUID(ctx context.Context, guid string) (*library.Entry, error) {
	return r.findOne(ctx, `guid = ?`, guid)
}

func (r *patternRepository) findOne(ctx context.Context, where, key string) (*library.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+patternColumns+` FROM patterns WHERE `+where, key)
	model, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &library.NotFoundError{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pattern: %w", err)
	}
	return model.toDomain(), nil
}

// List retrieves entries ordered by name.
func (r *patternRepository) List(ctx context.Context, filter library.ListFilter) ([]*library.Entry, error) {
	query := `SELECT ` + patternColumns + ` FROM patterns`
	var args []any

	if filter.Query != "" {
		query += ` WHERE name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'`
		like := "%" + escapeLike(filter.Query) + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY name COLLATE NOCASE`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*library.Entry
	for rows.Next() {
		model, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		entries = append(entries, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patterns: %w", err)
	}
	return entries, nil
}

// Delete removes the entry with name.
func (r *patternRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patterns WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}
	return requireAffected(result, name)
}

// Close is a no-op; the owning DB closes the connection.
func (r *patternRepository) Close() error {
	return nil
}

func requireAffected(result sql.Result, key string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &library.NotFoundError{Key: key}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
