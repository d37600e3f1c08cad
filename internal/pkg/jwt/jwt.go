package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const sseTokenLifetime = 5 * time.Minute

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTokenLifetime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "sse",
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenLifetime.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	userID, ok = userIDVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

// Claims are the identity fields carried by an access token.
type Claims struct {
	UserID string
	Role   user.Role
}

// ClaimsFromContext extracts the access token claims placed in ctx by the
// jwtauth verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	role, _ := claims["role"].(string)
	return Claims{UserID: userID, Role: user.Role(role)}, nil
}

// NewContext returns ctx carrying a token with the given claims. Used by
// background callers and tests that invoke services directly.
func NewContext(ctx context.Context, userID string, role user.Role) context.Context {
	token, err := jwt.NewBuilder().
		Claim("user_id", userID).
		Claim("role", string(role)).
		Claim("type", "access").
		Build()
	return jwtauth.NewContext(ctx, token, err)
}
