package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/levaja/marketplace-api/internal/domains/accounts/application/types"
	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
	"github.com/levaja/marketplace-api/internal/domains/accounts/ports"
)

// DefaultSessionTTL bounds a session when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// Service implements registration, authentication and user administration.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
	sessionTTL time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithSessionTTL overrides how long a session stays valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, hasher ports.PasswordHasher, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		sessions:   sessions,
		hasher:     hasher,
		tokens:     tokens,
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register signs up a consumer and opens a session.
func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*types.AuthResult, error) {
	if input.Password != input.ConfirmPassword {
		return nil, mapError(domain.ErrPasswordMismatch)
	}
	if !input.AcceptTerms {
		return nil, mapError(domain.ErrTermsNotAccepted)
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	now := s.now()
	user := &domain.User{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Email:       input.Email,
		Role:        domain.RoleConsumer,
		Phone:       strings.TrimSpace(input.Phone),
		Preferences: domain.DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	saved, err := s.createWithPassword(ctx, user, input.Password)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, saved)
}

// Login verifies credentials. Unknown emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*types.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, user)
}

// Logout revokes the session behind the token.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return ErrUnauthenticated
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

// Authenticate resolves a bearer token into the caller, using the user's current role.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, ErrUnauthenticated
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, ErrUnauthenticated
	}
	ok, err := s.sessions.Exists(ctx, claims.SessionID, s.now())
	if err != nil {
		return domain.Principal{}, err
	}
	if !ok {
		return domain.Principal{}, ErrUnauthenticated
	}
	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.Principal{}, ErrUnauthenticated
		}
		return domain.Principal{}, err
	}
	return domain.Principal{UserID: user.ID, Role: user.Role, SessionID: claims.SessionID, Token: token}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile applies the caller's own changes.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update types.ProfileUpdate) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Avatar != nil {
		user.Avatar = strings.TrimSpace(*update.Avatar)
	}
	if update.Preferences != nil {
		user.Preferences = *update.Preferences
	}
	return s.save(ctx, user)
}

// ChangePassword replaces the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID string, change types.PasswordChange) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, change.Current); err != nil {
		return mapError(domain.ErrWrongCurrentPassword)
	}
	if err := domain.ValidatePassword(change.New); err != nil {
		return mapError(err)
	}
	hash, err := s.hasher.Hash(change.New)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	_, err = s.save(ctx, user)
	return err
}

// CreateUser provisions an account with any role. The role defaults to employee.
func (s *Service) CreateUser(ctx context.Context, input types.UserInput) (*domain.User, error) {
	now := s.now()
	user := &domain.User{
		ID:          strings.TrimSpace(input.ID),
		Role:        domain.RoleEmployee,
		Preferences: domain.DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, err := s.repo.GetByID(ctx, user.ID); err == nil {
		return nil, mapError(ports.ErrUserExists)
	}
	if err := applyUserInput(user, input); err != nil {
		return nil, mapError(err)
	}
	password := ""
	if input.Password != nil {
		password = *input.Password
	}
	if password == "" {
		return nil, mapError(domain.ErrEmptyPassword)
	}
	return s.createWithPassword(ctx, user, password)
}

// UpdateUser applies an administrative partial update.
func (s *Service) UpdateUser(ctx context.Context, input types.UserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := applyUserInput(user, input); err != nil {
		return nil, mapError(err)
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	return s.save(ctx, user)
}

// DeleteUser removes the account and revokes all of its sessions.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.sessions.DeleteForUser(ctx, id)
}

func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns users ordered by name, optionally limited to one role.
func (s *Service) ListUsers(ctx context.Context, role string) ([]*domain.User, error) {
	var want domain.Role
	if strings.TrimSpace(role) != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			return nil, mapError(err)
		}
		want = parsed
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if want == "" || u.Role == want {
			result = append(result, u)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID < result[j].ID
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (s *Service) AddLoyaltyPoints(ctx context.Context, userID string, points int) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.AddLoyaltyPoints(points, s.now()); err != nil {
		return mapError(err)
	}
	_, err = s.repo.Save(ctx, user)
	return err
}

func (s *Service) createWithPassword(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	user.Email = domain.NormalizeEmail(user.Email)
	if err := domain.ValidateEmail(user.Email); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, mapError(ports.ErrEmailTaken)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	return s.save(ctx, user)
}

func (s *Service) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.UpdatedAt = s.now()
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) openSession(ctx context.Context, user *domain.User) (*types.AuthResult, error) {
	now := s.now()
	session := domain.Session{ID: uuid.NewString(), UserID: user.ID, CreatedAt: now, ExpiresAt: now.Add(s.sessionTTL)}
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role, session.ID, now)
	if err != nil {
		return nil, err
	}
	if expiresAt.Before(session.ExpiresAt) {
		session.ExpiresAt = expiresAt
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &types.AuthResult{User: user, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

func applyUserInput(user *domain.User, input types.UserInput) error {
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = domain.NormalizeEmail(*input.Email)
	}
	if input.Role != nil {
		role, err := domain.ParseRole(*input.Role)
		if err != nil {
			return err
		}
		user.Role = role
	}
	if input.SectorID != nil {
		user.SectorID = strings.TrimSpace(*input.SectorID)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Avatar != nil {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
