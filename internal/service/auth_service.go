package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/auth"
	"github.com/hanifnrh/helpdesk-bumi/internal/config"
	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
	"github.com/hanifnrh/helpdesk-bumi/internal/events"
	"github.com/hanifnrh/helpdesk-bumi/internal/mail"
	"github.com/hanifnrh/helpdesk-bumi/internal/repository"
	apperrors "github.com/hanifnrh/helpdesk-bumi/pkg/util/errorutil"
)

// AuthService coordinates registration, login, invitation and
// password reset flows.
type AuthService struct {
	profiles   repository.ProfileRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	mailer     mail.Mailer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
	siteURL    string
}

// AuthDependencies bundles collaborators for auth service.
type AuthDependencies struct {
	ProfileRepo       repository.ProfileRepository
	PasswordResetRepo repository.PasswordResetRepository
	Mailer            mail.Mailer
	Dispatcher        events.Dispatcher
	Logger            *zap.Logger
}

// InviteInput is the admin-side invitation payload.
type InviteInput struct {
	Email      string
	Name       string
	Phone      string
	Role       domain.Role
	Department *int64
}

// ProfileUpdateInput carries the self-editable profile fields. Nil means
// leave the field as it is; the department pointer assigns (or reassigns)
// a department by reference-table ID.
type ProfileUpdateInput struct {
	Name       *string
	Phone      *string
	Department *int64
}

// NewAuthService builds the service.
func NewAuthService(cfg *config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		profiles:   deps.ProfileRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		siteURL:    cfg.App.SiteURL,
	}
}

// Register creates a new end-user account and logs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Profile, string, time.Time, error) {
	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	profile := &domain.Profile{
		Name:         name,
		Email:        email,
		Role:         domain.RoleUser,
		PasswordHash: hash,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return profile, token, exp, nil
}

// Login authenticates by email and password. The role on the returned
// profile decides which dashboard the client routes to.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Profile, string, time.Time, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return profile, token, exp, nil
}

// Logout no-ops for the stateless JWT approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// InviteUser provisions a profile for the given email and sends an
// invitation email carrying a one-time password setup link. Existing
// profiles are updated in place so a re-invite refreshes name, phone
// and role.
func (s *AuthService) InviteUser(ctx context.Context, actorID string, input InviteInput) (*domain.Profile, error) {
	role := input.Role
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	profile := &domain.Profile{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Role:       role,
		Department: input.Department,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}

	token, err := s.issueResetToken(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	resetURL := s.resetURL(token.Token)
	subject := "You have been invited to the helpdesk"
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>An account was created for you. Set your password to get started:</p><p><a href=%q>%s</a></p>",
		profile.Name, resetURL, resetURL,
	)
	if _, err := s.mailer.Send(ctx, profile.Email, subject, html); err != nil {
		s.logger.Error("invite email failed", zap.String("email", profile.Email), zap.Error(err))
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserInvited,
		ActorID: actorID,
		Payload: events.UserInvitedPayload{
			Email:    profile.Email,
			Name:     profile.Name,
			Role:     string(profile.Role),
			ResetURL: resetURL,
		},
	})
	return profile, nil
}

// RequestPasswordReset issues a one-time token and mails the reset link.
// Unknown emails return without error so the endpoint does not leak
// which addresses exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}

	token, err := s.issueResetToken(ctx, profile.ID)
	if err != nil {
		return err
	}

	resetURL := s.resetURL(token.Token)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Use the link below to reset your password. It expires in %d minutes.</p><p><a href=%q>%s</a></p>",
		profile.Name, int(s.resetTTL.Minutes()), resetURL, resetURL,
	)
	if _, err := s.mailer.Send(ctx, profile.Email, "Reset your helpdesk password", html); err != nil {
		s.logger.Error("reset email failed", zap.String("email", profile.Email), zap.Error(err))
		return apperrors.MapError(err)
	}
	return nil
}

// ConfirmPasswordReset validates the one-time token and updates the
// password. Used and expired tokens are rejected.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid reset token")
		}
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewUnauthorized("reset token expired or already used")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	profile, err := s.profiles.GetByID(ctx, token.ProfileID)
	if err != nil {
		return apperrors.MapError(err)
	}
	profile.PasswordHash = hash
	if err := s.profiles.Update(ctx, profile); err != nil {
		return apperrors.MapError(err)
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// ChangePassword verifies the current password before updating.
func (s *AuthService) ChangePassword(ctx context.Context, profileID, currentPassword, newPassword string) error {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(profile.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	profile.PasswordHash = hash
	return apperrors.MapError(s.profiles.Update(ctx, profile))
}

// GetProfile loads a single account record.
func (s *AuthService) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("profile", map[string]any{"profile_id": profileID})
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// UpdateProfile applies the self-editable fields (name, phone,
// department) to the caller's own profile. Email, role and password are
// untouched; those change through their dedicated flows.
func (s *AuthService) UpdateProfile(ctx context.Context, profileID string, input ProfileUpdateInput) (*domain.Profile, error) {
	profile, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Department != nil {
		profile.Department = input.Department
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// ListUsers returns every account for the admin user-management view.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profiles, nil
}

// ListDepartments returns the department reference table backing the
// profile form dropdown.
func (s *AuthService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.profiles.ListDepartments(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return departments, nil
}

// DeleteUser removes a profile. Admin only, enforced at the route.
func (s *AuthService) DeleteUser(ctx context.Context, profileID string) error {
	if err := s.profiles.Delete(ctx, profileID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("profile", map[string]any{"profile_id": profileID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueResetToken(ctx context.Context, profileID string) (*repository.PasswordResetToken, error) {
	token := &repository.PasswordResetToken{
		ProfileID: profileID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, apperrors.MapError(err)
	}
	return token, nil
}

func (s *AuthService) resetURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", s.siteURL, token)
}

func (s *AuthService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
