package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StaffClaims is the token payload issued to gym staff by the identity
// service. the retention api only cares about who the staff member is,
// which branch they work at, and whether their role may see revenue
// figures.
type StaffClaims struct {
	jwt.RegisteredClaims

	// role is the staff member's role (e.g., "owner", "manager", "trainer")
	Role string `json:"role,omitempty"`

	// branch_id scopes the token to a single gym branch
	BranchID string `json:"branch_id,omitempty"`

	// name is the staff member's display name
	Name string `json:"name,omitempty"`

	// email is the staff member's email address
	Email string `json:"email,omitempty"`
}

// StaffID returns the subject claim (staff member's UUID)
func (c *StaffClaims) StaffID() string {
	return c.Subject
}

// IsStaff returns true if the token carries a recognized staff role
func (c *StaffClaims) IsStaff() bool {
	switch c.Role {
	case "owner", "manager", "trainer", "front_desk":
		return true
	}
	return false
}

// CanViewRevenue returns true for roles allowed to see revenue-at-risk
// figures in the overview.
func (c *StaffClaims) CanViewRevenue() bool {
	return c.Role == "owner" || c.Role == "manager"
}

// JWTValidator validates staff auth tokens
type JWTValidator struct {
	secret []byte
}

// NewJWTValidator creates a new validator with the shared jwt secret
func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{
		secret: []byte(secret),
	}
}

// common jwt validation errors
var (
	ErrMissingToken     = errors.New("missing authorization token")
	ErrInvalidToken     = errors.New("invalid token format")
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// ValidateToken parses and validates a staff jwt token
// returns the claims if valid, or an error if validation fails
func (v *JWTValidator) ValidateToken(tokenString string) (*StaffClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	// strip "Bearer " prefix if present
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	tokenString = strings.TrimSpace(tokenString)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &StaffClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// validate the signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		// check for specific jwt errors
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	// validate essential claims
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidClaims)
	}

	// check expiration manually as extra safety
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from an Authorization header value
func ExtractBearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	// handle "Bearer <token>" format
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return authHeader
}
