package domain

import (
	"errors"
	"strings"
)

// Role grants access to staff areas of the API. Consumers sit below every staff role.
type Role string

const (
	RoleConsumer Role = "consumer"
	RoleViewer   Role = "viewer"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

var ErrInvalidRole = errors.New("role must be consumer, viewer, employee, manager or admin")

var roleRanks = map[Role]int{
	RoleConsumer: 0,
	RoleViewer:   1,
	RoleEmployee: 2,
	RoleManager:  3,
	RoleAdmin:    4,
}

// ParseRole validates a raw role name.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := roleRanks[role]; !ok {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Rank orders roles; unknown roles rank below consumers.
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// HasPermission reports whether r is at least as privileged as required.
func (r Role) HasPermission(required Role) bool {
	return r.Rank() >= required.Rank()
}

// IsStaff reports whether the role belongs to a market employee.
func (r Role) IsStaff() bool {
	return r.Rank() >= RoleViewer.Rank()
}
