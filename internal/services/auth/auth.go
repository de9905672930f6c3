package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mymdb/proj/internal/domain/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type GetUserParams struct {
	ID       int64
	Email    string
	IsActive bool
}

type UserProvider interface {
	GetUser(ctx context.Context, params GetUserParams) (*models.User, error)
}

// AuthService resolves session tokens to users. Sessions are HS256 signed
// JWTs carrying the user id in the "uid" claim, users live in the SSO
// service.
type AuthService struct {
	log    *slog.Logger
	sso    UserProvider
	secret []byte
}

func New(log *slog.Logger, sso UserProvider, secret string) *AuthService {
	return &AuthService{
		log:    log,
		sso:    sso,
		secret: []byte(secret),
	}
}

// UserFromSession returns the user the token was issued for. An empty token
// yields the anonymous user without error. Invalid tokens and unknown users
// also yield the anonymous user, together with ErrInvalidSession or
// ErrUserNotFound.
func (a *AuthService) UserFromSession(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.AuthService.UserFromSession"
	log := a.log.With("op", op)
	if token == "" {
		return models.AnonymousUser, nil
	}
	userID, err := a.parseSession(token)
	if err != nil {
		log.Warn("rejected session token", "errMsg", err.Error())
		return models.AnonymousUser, ErrInvalidSession
	}
	user, err := a.sso.GetUser(ctx, GetUserParams{ID: userID})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Warn("session user not found", "userID", userID)
			return models.AnonymousUser, ErrUserNotFound
		}
		log.Error("Error calling Sso.GetUser", "errMsg", err.Error())
		return nil, err
	}
	return user, nil
}

func (a *AuthService) parseSession(token string) (int64, error) {
	parsed, err := jwt.Parse(
		token,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return 0, ErrInvalidSession
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return 0, fmt.Errorf("%w: missing uid claim", ErrInvalidSession)
	}
	return int64(uid), nil
}

// NewSessionToken issues a session token for userID valid for ttl.
func (a *AuthService) NewSessionToken(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString(a.secret)
}
