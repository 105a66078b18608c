// Package library is the domain layer for saved patterns: a named pattern
// with its flags, sample subject and optional replacement template.
//
// The package has no infrastructure dependencies. Persistence is behind the
// Repository interface; see internal/infrastructure/sqlite.
package library

import (
	"strings"
	"time"
)

// Entry is a saved pattern. Fields are unexported; use NewEntry or
// ReconstituteEntry and the accessors.
type Entry struct {
	id          int64
	guid        string
	name        string
	pattern     string
	flags       string
	subject     string
	replacement *string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewEntry creates an unsaved entry. Name and pattern are required.
func NewEntry(guid, name, pattern, flags string, now time.Time) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.ContainsAny(name, "\n\t") {
		return nil, &ValidationError{Field: "name", Reason: "must be a single line"}
	}
	if pattern == "" {
		return nil, &ValidationError{Field: "pattern", Reason: "is required"}
	}
	return &Entry{
		guid:      guid,
		name:      name,
		pattern:   pattern,
		flags:     flags,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstituteEntry rebuilds an entry from storage without validation.
func ReconstituteEntry(
	id int64,
	guid, name, pattern, flags, subject string,
	replacement *string,
	description string,
	createdAt, updatedAt time.Time,
) *Entry {
	return &Entry{
		id:          id,
		guid:        guid,
		name:        name,
		pattern:     pattern,
		flags:       flags,
		subject:     subject,
		replacement: replacement,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (e *Entry) ID() int64 { return e.id }
func (e *Entry) GUID() string { return e.guid }
func (e *Entry) Name() string { return e.name }
func (e *Entry) Pattern() string { return e.pattern }
func (e *Entry) Flags() string { return e.flags }
func (e *Entry) Subject() string { return e.subject }
func (e *Entry) Replacement() *string { return e.replacement }
func (e *Entry) Description() string { return e.description }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
func (e *Entry) UpdatedAt() time.Time { return e.updatedAt }
func (e *Entry) IsPersisted() bool { return e.id > 0 }
func (e *Entry) SetID(id int64) { e.id = id }
func (e *Entry) SetDescription(d string) { e.description = d }

// SetSubject stores the sample subject saved with the pattern.
func (e *Entry) SetSubject(subject string) {
	e.subject = subject
}

// SetReplacement stores the replacement template; nil clears it.
func (e *Entry) SetReplacement(template *string) {
	if template == nil {
		e.replacement = nil
		return
	}
	t := *template
	e.replacement = &t
}

// Update replaces the pattern and flags, keeping identity and creation time.
func (e *Entry) Update(pattern, flags string, now time.Time) error {
	if pattern == "" {
		return &ValidationError{Field: "pattern", Reason: "is required"}
	}
	e.pattern = pattern
	e.flags = flags
	e.updatedAt = now
	return nil
}
