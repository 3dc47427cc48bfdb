package profile

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dotaznik/internal/audit"
	"dotaznik/internal/jwtauth"
	"dotaznik/internal/platform/middleware"
	"dotaznik/pkg/apperrors"
)

const (
	adminUsername = "admin"
	adminUserID   = "admin"
	tokenTTL      = 12 * time.Hour
)

// Service handles profile reads and writes plus the admin login.
type Service struct {
	store        Store
	tokens       *jwtauth.Service
	adminPwdHash []byte
	auditor      *audit.Service
	clock        func() time.Time
}

func NewService(store Store, tokens *jwtauth.Service, adminPasswordHash string, auditor *audit.Service) *Service {
	return &Service{
		store:        store,
		tokens:       tokens,
		adminPwdHash: []byte(adminPasswordHash),
		auditor:      auditor,
		clock:        time.Now,
	}
}

// WithClock overrides the time source, used by tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Login verifies the admin credentials and issues an access token. The
// password is checked against a bcrypt hash from configuration so the
// plaintext never lives in the process.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != adminUsername || len(s.adminPwdHash) == 0 {
		return "", apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(s.adminPwdHash, []byte(password)); err != nil {
		return "", apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(adminUserID, string(RoleAdmin), tokenTTL)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "issue token", err)
	}

	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionAdminLogin,
		Actor:     adminUserID,
		RequestID: middleware.GetRequestID(ctx),
	})
	return token, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (UserProfile, error) {
	return s.store.FindProfile(ctx, userID)
}

// SaveProfile upserts the caller's profile. The user ID comes from the
// token, not the payload.
func (s *Service) SaveProfile(ctx context.Context, userID string, profile UserProfile) (UserProfile, error) {
	profile.UserID = userID
	profile.UpdatedAt = s.clock().UnixNano()
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return UserProfile{}, err
	}
	return profile, nil
}

// RoleOf resolves a user's role, defaulting to guest when none was
// assigned.
func (s *Service) RoleOf(ctx context.Context, userID string) (Role, error) {
	role, ok, err := s.store.FindRole(ctx, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		if userID == adminUserID {
			return RoleAdmin, nil
		}
		return RoleGuest, nil
	}
	return role, nil
}

func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := s.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == RoleAdmin, nil
}

// AssignRole lets an admin grant or change another user's role.
func (s *Service) AssignRole(ctx context.Context, userID string, role Role) error {
	if userID == "" {
		return apperrors.New(apperrors.CodeBadRequest, "user id is required")
	}
	if !role.Valid() {
		return apperrors.New(apperrors.CodeBadRequest, "unknown role")
	}
	return s.store.SaveRole(ctx, userID, role)
}
