package library

import (
	"context"
	"fmt"
)

// ListFilter narrows List results.
type ListFilter struct {
	// Query matches a substring of the name or description. Empty matches all.
	Query string

	// Limit restricts the number of entries returned. 0 means no limit.
	Limit int
}

// Repository persists saved patterns.
type Repository interface {
	// Save inserts a new entry (ID == 0) and sets its ID, or updates an
	// existing one. Returns DuplicateNameError when another entry has the name.
	Save(ctx context.Context, entry *Entry) error

	// FindByName returns NotFoundError if no entry has the name.
	FindByName(ctx context.Context, name string) (*Entry, error)

	// FindByGUID returns NotFoundError if no entry has the GUID.
	FindByGUID(ctx context.Context, guid string) (*Entry, error)

	// List returns entries ordered by name.
	List(ctx context.Context, filter ListFilter) ([]*Entry, error)

	// Delete removes the entry with the name. Returns NotFoundError if none.
	Delete(ctx context.Context, name string) error

	Close() error
}

// NotFoundError is returned when a saved pattern does not exist.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("saved pattern not found: %s", e.Key)
}

// DuplicateNameError is returned when saving would create a second entry
// with an existing name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a saved pattern named %q already exists", e.Name)
}

// ValidationError reports an invalid entry field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
