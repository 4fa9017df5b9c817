package service

import (
	"context"
	"errors"
	"time"

	"rofoportal/internal/config"
	"rofoportal/internal/dto"
	"rofoportal/internal/model"
	"rofoportal/internal/repository"
	"rofoportal/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials deliberately covers both unknown-user and bad-password
// so login responses don't leak which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	repo     repository.UserRepository
	sessions SessionStore
	cfg      *config.Config
}

func NewAuthService(repo repository.UserRepository, sessions SessionStore, cfg *config.Config) AuthService {
	return &authService{repo: repo, sessions: sessions, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrStoreUnavailable) {
		// The credential table lives in the shared store; when it is down
		// the caller must see a 503, not a failed login.
		return nil, err
	}
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.generateToken(user, sess.ID, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User: dto.UserResponse{
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

// Logout deletes the session; the JWT becomes useless even before it expires
// because auth middleware checks the session is still live.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *authService) generateToken(user *model.User, sessionID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username":   user.Username,
		"role":       user.Role,
		"session_id": sessionID,
		"exp":        time.Now().Add(duration).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
