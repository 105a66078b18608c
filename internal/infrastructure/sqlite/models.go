package sqlite

import (
	"time"

	"github.com/zjrosen/rexy/internal/library"
)

// PatternModel is one row of the patterns table. Times are Unix seconds.
type PatternModel struct {
	ID          int64
	GUID        string
	Name        string
	Pattern     string
	Flags       string
	Subject     string
	Replacement *string // nullable
	Description string
	CreatedAt   int64
	UpdatedAt   int64
}

func toPatternModel(e *library.Entry) *PatternModel {
	return &PatternModel{
		ID:          e.ID(),
		GUID:        e.GUID(),
		Name:        e.Name(),
		Pattern:     e.Pattern(),
		Flags:       e.Flags(),
		Subject:     e.Subject(),
		Replacement: e.Replacement(),
		Description: e.Description(),
		CreatedAt:   e.CreatedAt().Unix(),
		UpdatedAt:   e.UpdatedAt().Unix(),
	}
}

func (m *PatternModel) toDomain() *library.Entry {
	return library.ReconstituteEntry(
		m.ID,
		m.GUID,
		m.Name,
		m.Pattern,
		m.Flags,
		m.Subject,
		m.Replacement,
		m.Description,
		time.Unix(m.CreatedAt, 0),
		time.Unix(m.UpdatedAt, 0),
	)
}
