package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyAction = errors.New("activity action is required")
	ErrEmptyActor  = errors.New("activity user is required")
)

// ActivityEntry is an audit line for a back-office mutation.
type ActivityEntry struct {
	ID          string
	UserID      string
	Action      string
	Description string
	Timestamp   time.Time
	Metadata    map[string]string
}

func (a *ActivityEntry) Validate() error {
	a.Action = strings.TrimSpace(a.Action)
	if a.UserID == "" {
		return ErrEmptyActor
	}
	if a.Action == "" {
		return ErrEmptyAction
	}
	return nil
}
