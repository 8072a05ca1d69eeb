// Package filters turns raw report-list parameters into typed criteria.
//
// Normalization only resolves ids and coerces values. It does not authorize
// anything. An id that is absent, malformed or unknown resolves to nil, and a
// nil criterion means the filter is not applied at all.
package filters

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/google/uuid"
)

// Raw is the list filter exactly as received from the request.
type Raw struct {
	Search        string `query:"search"`
	CategoryID    string `query:"categoryId"`
	TagID         string `query:"tagId"`
	StatusID      string `query:"statusId"`
	ProjectID     string `query:"projectId"`
	Unassigned    string `query:"unassigned"`
	Assigned      string `query:"assigned"`
	AdminAssigned string `query:"adminAssigned"`
}

// Normalized holds resolved criteria. Nil pointers mean "no filter".
type Normalized struct {
	Search        string
	Category      *models.Category
	Tag           *models.Tag
	Status        *models.ReportStatus
	Project       *models.Project
	Unassigned    bool
	Assigned      bool
	AdminAssigned bool
}

// Lookup resolves filter ids. A miss returns (nil, nil); an error is only
// returned when the lookup itself failed.
type Lookup interface {
	Category(id uuid.UUID) (*models.Category, error)
	Tag(id uuid.UUID) (*models.Tag, error)
	// Project must return the project with its members loaded.
	Project(id uuid.UUID) (*models.Project, error)
}

// Normalize resolves raw into typed criteria.
func Normalize(lookup Lookup, raw Raw) (Normalized, error) {
	n := Normalized{
		Search:        strings.TrimSpace(raw.Search),
		Unassigned:    ParseFlag(raw.Unassigned),
		Assigned:      ParseFlag(raw.Assigned),
		AdminAssigned: ParseFlag(raw.AdminAssigned),
	}

	if status, ok := models.StatusFromCode(raw.StatusID); ok {
		n.Status = &status
	}

	if id, ok := parseID(raw.CategoryID); ok {
		c, err := lookup.Category(id)
		if err != nil {
			return Normalized{}, fmt.Errorf("resolve category filter: %w", err)
		}
		n.Category = c
	}

	if id, ok := parseID(raw.TagID); ok {
		t, err := lookup.Tag(id)
		if err != nil {
			return Normalized{}, fmt.Errorf("resolve tag filter: %w", err)
		}
		n.Tag = t
	}

	if id, ok := parseID(raw.ProjectID); ok {
		p, err := lookup.Project(id)
		if err != nil {
			return Normalized{}, fmt.Errorf("resolve project filter: %w", err)
		}
		n.Project = p
	}

	return n, nil
}

// ParseFlag accepts 1, true, yes and on in any case.
func ParseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseID(raw string) (uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
