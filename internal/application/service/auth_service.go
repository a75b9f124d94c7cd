package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/navigation"
	"github.com/sangkips/till-api/pkg/apperror"
	"github.com/sangkips/till-api/pkg/oauth"
	"github.com/sangkips/till-api/pkg/utils"
)

// GoogleSignIn is the part of the Google provider the auth service uses
type GoogleSignIn interface {
	IsConfigured() bool
	AuthURL(state string) string
	UserFromCode(ctx context.Context, code string) (*oauth.GoogleUser, error)
}

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	google     GoogleSignIn
}

// NewAuthService creates a new auth service. google may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	google GoogleSignIn,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		google:     google,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Identity returns the navigation identity of the logged in user
func (o *LoginOutput) Identity() *navigation.Identity {
	return IdentityOf(o.User)
}

// IdentityOf converts a user to the identity a terminal signs in with
func IdentityOf(u *entity.User) *navigation.Identity {
	return &navigation.Identity{
		UserID:      u.ID,
		Username:    u.Username,
		DisplayName: u.FullName(),
		StaffCode:   u.StaffCode,
		Roles:       u.RoleNames(),
	}
}

// Login authenticates a user by username and password and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active || user.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// GoogleAuthURL returns the Google consent URL for state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.google == nil || !s.google.IsConfigured() {
		return "", apperror.NewAppError(http.StatusServiceUnavailable, oauth.ErrOAuthNotConfigured.Error())
	}
	return s.google.AuthURL(state), nil
}

// LoginWithGoogle signs in an existing staff member by the email on their
// Google account. Google sign-in never creates users.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*LoginOutput, error) {
	if s.google == nil || !s.google.IsConfigured() {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, oauth.ErrOAuthNotConfigured.Error())
	}

	gUser, err := s.google.UserFromCode(ctx, code)
	if err != nil {
		if errors.Is(err, oauth.ErrInvalidCode) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}
	if !gUser.VerifiedEmail {
		return nil, apperror.NewAppError(http.StatusUnauthorized, "Google account email is not verified")
	}

	user, err := s.userRepo.GetByEmail(ctx, gUser.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if user.ProviderID == nil {
		user.Provider = "google"
		user.ProviderID = &gUser.ID
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(user)
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.StaffCode, user.RoleNames())
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
