package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptySectorID = errors.New("sector id is required")
	ErrEmptyName     = errors.New("sector name is required")
)

// Sector groups store staff and the product categories they handle.
type Sector struct {
	ID                string
	Name              string
	Description       string
	ManagerID         string
	EmployeeIDs       []string
	ProductCategories []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s *Sector) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.ID == "" {
		return ErrEmptySectorID
	}
	if s.Name == "" {
		return ErrEmptyName
	}
	s.EmployeeIDs = dedupe(s.EmployeeIDs)
	s.ProductCategories = dedupe(s.ProductCategories)
	return nil
}

// HandlesCategory reports whether the category is assigned to this sector.
func (s *Sector) HandlesCategory(category string) bool {
	for _, c := range s.ProductCategories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

func (s *Sector) Clone() *Sector {
	if s == nil {
		return nil
	}
	clone := *s
	clone.EmployeeIDs = append([]string(nil), s.EmployeeIDs...)
	clone.ProductCategories = append([]string(nil), s.ProductCategories...)
	return &clone
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
