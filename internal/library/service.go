package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/rexy/internal/log"
)

// SaveRequest describes a pattern to save.
type SaveRequest struct {
	Name        string
	Pattern     string
	Flags       string
	Subject     string
	Replacement *string
	Description string

	// Overwrite replaces an existing entry with the same name instead of
	// failing with DuplicateNameError.
	Overwrite bool
}

// Service implements the library use cases on top of a Repository.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// NewService creates a service over repo.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Save stores req, creating or (with Overwrite) updating the named entry.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*Entry, error) {
	req.Name = strings.TrimSpace(req.Name)
	existing, err := s.repo.FindByName(ctx, req.Name)
	var notFound *NotFoundError
	switch {
	case errors.As(err, &notFound):
		existing = nil
	case err != nil:
		return nil, fmt.Errorf("looking up %q: %w", req.Name, err)
	case !req.Overwrite:
		return nil, &DuplicateNameError{Name: existing.Name()}
	}

	entry := existing
	if entry == nil {
		entry, err = NewEntry(s.newID(), req.Name, req.Pattern, req.Flags, s.now())
		if err != nil {
			return nil, err
		}
	} else if err := entry.Update(req.Pattern, req.Flags, s.now()); err != nil {
		return nil, err
	}
	entry.SetSubject(req.Subject)
	entry.SetReplacement(req.Replacement)
	entry.SetDescription(req.Description)

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}
	log.Info(log.CatDB, "Saved pattern", "name", entry.Name(), "guid", entry.GUID())
	return entry, nil
}

// Get returns the entry with name, or with GUID when no name matches.
func (s *Service) Get(ctx context.Context, nameOrGUID string) (*Entry, error) {
	entry, err := s.repo.FindByName(ctx, nameOrGUID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		return entry, err
	}
	if _, parseErr := uuid.Parse(nameOrGUID); parseErr != nil {
		return nil, err
	}
	return s.repo.FindByGUID(ctx, nameOrGUID)
}

// List returns saved patterns ordered by name.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.List(ctx, filter)
}

// Delete removes the named entry.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	log.Info(log.CatDB, "Deleted pattern", "name", name)
	return nil
}
