package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/config"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService issues bearer tokens and resolves them back to users.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
		now: time.Now,
	}
}

// Login checks the password of the user registered under email and returns
// a fresh access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// IssueToken signs an HS256 token carrying the user id as subject. The token
// expires after the configured access lifetime and cannot be refreshed.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies credential and returns the user it was issued for.
// Every failure is reported as ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, credential string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	return s.ResolveIdentity(ctx, claims.Subject)
}

// ResolveToken finishes authentication for a token whose signature was
// already verified by the HTTP layer. Tokens without an expiry are refused.
func (s *AuthService) ResolveToken(ctx context.Context, token *jwt.Token) (*models.User, error) {
	if token == nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, ErrUnauthorized
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil || !s.now().Before(exp.Time) {
		return nil, ErrUnauthorized
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.ResolveIdentity(ctx, sub)
}

// ResolveIdentity loads the user named by a token subject. A user removed
// after the token was issued no longer resolves.
func (s *AuthService) ResolveIdentity(ctx context.Context, subject string) (*models.User, error) {
	userID, err := uuid.Parse(subject)
	if err != nil || userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

func (s *AuthService) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnauthorized
	}
	return []byte(s.cfg.JWTSecret), nil
}

func hashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
