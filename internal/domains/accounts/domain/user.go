package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	ErrEmptyName             = errors.New("name is required")
	ErrInvalidEmail          = errors.New("email address is invalid")
	ErrEmptyPassword         = errors.New("password is required")
	ErrWeakPassword          = errors.New("password must have at least 8 characters with upper case, lower case and a digit")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrTermsNotAccepted      = errors.New("terms of use must be accepted")
	ErrWrongCurrentPassword  = errors.New("current password is incorrect")
	ErrNegativeLoyaltyPoints = errors.New("loyalty points must not be negative")
	ErrInvalidMaxDistance    = errors.New("max distance must not be negative")
)

const (
	DefaultMaxDistanceKm = 5
	MinPasswordLength    = 8
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Preferences drive the consumer's default catalog view.
type Preferences struct {
	Categories           []string
	MaxDistanceKm        float64
	NotificationsEnabled bool
	PreferredMarkets     []string
	DietaryRestrictions  []string
}

func DefaultPreferences() Preferences {
	return Preferences{
		Categories:           []string{},
		MaxDistanceKm:        DefaultMaxDistanceKm,
		NotificationsEnabled: true,
		PreferredMarkets:     []string{},
		DietaryRestrictions:  []string{},
	}
}

// User is a consumer or a staff member of a market.
type User struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	Role                Role
	SectorID            string
	Avatar              string
	Phone               string
	Preferences         Preferences
	LoyaltyPoints       int
	SustainabilityScore int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NormalizeEmail trims and lower-cases an address so lookups are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the registration policy.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len([]rune(password)) < MinPasswordLength {
		return ErrWeakPassword
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return ErrWeakPassword
	}
	return nil
}

// Validate re-applies the user invariants before persistence.
func (u *User) Validate() error {
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return ErrEmptyName
	}
	u.Email = NormalizeEmail(u.Email)
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	if u.LoyaltyPoints < 0 {
		return ErrNegativeLoyaltyPoints
	}
	if u.Preferences.MaxDistanceKm < 0 {
		return ErrInvalidMaxDistance
	}
	return nil
}

// AddLoyaltyPoints credits points earned at checkout.
func (u *User) AddLoyaltyPoints(points int, now time.Time) error {
	if points < 0 {
		return ErrNegativeLoyaltyPoints
	}
	u.LoyaltyPoints += points
	u.UpdatedAt = now
	return nil
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Preferences = Preferences{
		Categories:           append([]string{}, u.Preferences.Categories...),
		MaxDistanceKm:        u.Preferences.MaxDistanceKm,
		NotificationsEnabled: u.Preferences.NotificationsEnabled,
		PreferredMarkets:     append([]string{}, u.Preferences.PreferredMarkets...),
		DietaryRestrictions:  append([]string{}, u.Preferences.DietaryRestrictions...),
	}
	return &clone
}
