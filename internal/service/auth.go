package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

const tokenLifetime = 24 * time.Hour

var errMissingSecret = errors.New("jwt secret key is empty")

type userClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService resolves bearer tokens to users.
type AuthService interface {
	GenerateToken(username string) (string, error)
	ResolveUser(token string) (*entity.User, error)
}

type authServiceImpl struct {
	secretKey []byte
	now       func() time.Time
}

func NewAuthService(secretKey string) (AuthService, error) {
	if secretKey == "" {
		return nil, errMissingSecret
	}

	return &authServiceImpl{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}, nil
}

func (that *authServiceImpl) GenerateToken(username string) (string, error) {
	now := that.now()
	claims := userClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (that *authServiceImpl) ResolveUser(tokenString string) (*entity.User, error) {
	claims := &userClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return that.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(that.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrUnauthorized, err)
	}

	if claims.Username == "" {
		return nil, fmt.Errorf("%w: token has no username", apperror.ErrUnauthorized)
	}

	return &entity.User{Username: claims.Username}, nil
}
