package services

import (
	"errors"
	"fmt"
	"time"

	"snackshop-admin/internal/models"
	"snackshop-admin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// TokenStore remembers revoked token IDs until their natural expiry.
type TokenStore interface {
	RevokeToken(tokenID string, ttl time.Duration) error
	IsTokenRevoked(tokenID string) (bool, error)
}

// Claims carried inside the dashboard's JWT.
type Claims struct {
	UserID  uint   `json:"user_id"`
	Role    string `json:"role"`
	TokenID string `json:"jti"`
}

type AuthService interface {
	Login(username, password string) (string, *models.User, error)
	Validate(token string) (*Claims, error)
	Logout(claims *Claims) error
	GetUser(id uint) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenStore, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, user, nil
}

func (s *authService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	role, _ := mapClaims["role"].(string)
	tokenID, _ := mapClaims["jti"].(string)

	if tokenID != "" {
		revoked, err := s.tokens.IsTokenRevoked(tokenID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token: %w", err)
		}
		if revoked {
			return nil, errors.New("token has been revoked")
		}
	}

	return &Claims{UserID: uint(userID), Role: role, TokenID: tokenID}, nil
}

func (s *authService) Logout(claims *Claims) error {
	if claims.TokenID == "" {
		return nil
	}
	return s.tokens.RevokeToken(claims.TokenID, s.tokenTTL)
}

func (s *authService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
