package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"petshop2/internal/caching"
	"petshop2/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService manages JWT access tokens and redis-backed refresh tokens.
type AuthService interface {
	GenerateTokens(ctx context.Context, userID, tenantID uuid.UUID) (*models.TokenResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
	RevokeUserTokens(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // Access token TTL in seconds
	refreshTTL int // Refresh token TTL in seconds
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

func NewAuthService(cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
	}
}

func refreshKey(tokenHash string) string {
	return "petshop:refresh:" + tokenHash
}

func userTokensKey(userID uuid.UUID) string {
	return "petshop:refresh:user:" + userID.String()
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *authService) GenerateTokens(ctx context.Context, userID, tenantID uuid.UUID) (*models.TokenResponse, error) {
	now := time.Now()

	claims := TokenClaims{
		UserID:   userID.String(),
		TenantID: tenantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "petshop-auth",
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{"petshop-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.issueRefreshToken(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
	}, nil
}

func (s *authService) issueRefreshToken(ctx context.Context, userID, tenantID uuid.UUID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token := hex.EncodeToString(raw)
	hash := hashToken(token)

	ttl := time.Duration(s.refreshTTL) * time.Second
	value := userID.String() + "|" + tenantID.String()
	if err := s.cacheSvc.SetString(ctx, refreshKey(hash), value, ttl); err != nil {
		return "", err
	}
	// Track the user's current refresh token so RevokeUserTokens can find it
	if err := s.cacheSvc.SetString(ctx, userTokensKey(userID), hash, ttl); err != nil {
		return "", err
	}
	return token, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	hash := hashToken(refreshToken)
	value, err := s.cacheSvc.GetString(ctx, refreshKey(hash))
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, ErrInvalidToken
	}

	parts := strings.SplitN(value, "|", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, ErrInvalidToken
	}
	tenantID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Rotate: the presented token is single-use
	if err := s.cacheSvc.Delete(ctx, refreshKey(hash)); err != nil {
		return nil, err
	}

	return s.GenerateTokens(ctx, userID, tenantID)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.cacheSvc.Delete(ctx, refreshKey(hashToken(refreshToken)))
}

func (s *authService) RevokeUserTokens(ctx context.Context, userID uuid.UUID) error {
	hash, err := s.cacheSvc.GetString(ctx, userTokensKey(userID))
	if err != nil {
		return err
	}
	if hash != "" {
		if err := s.cacheSvc.Delete(ctx, refreshKey(hash)); err != nil {
			return err
		}
	}
	return s.cacheSvc.Delete(ctx, userTokensKey(userID))
}
