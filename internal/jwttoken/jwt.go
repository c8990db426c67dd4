// Package jwttoken issues and validates the HS256 access tokens used by
// tenant integrations. Claims carry the tenant and user identity the
// handlers resolve entries against.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

// Claims represents the JWT claims for access tokens.
type Claims struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService handles JWT creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey, issuer, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

func (s *JWTService) GenerateAccessToken(tenantID id.TenantID, userID id.UserID, expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TenantID: tenantID.String(),
		UserID:   userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// IdentityFromToken validates a token and returns the identity it carries.
func (s *JWTService) IdentityFromToken(tokenString string) (id.TenantID, id.UserID, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return id.TenantID{}, id.UserID{}, err
	}
	return claims.Identity()
}

// Identity parses the tenant and user IDs out of validated claims.
func (c *Claims) Identity() (id.TenantID, id.UserID, error) {
	tenantID, err := id.ParseTenantID(c.TenantID)
	if err != nil {
		return id.TenantID{}, id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid tenant claim")
	}
	userID, err := id.ParseUserID(c.UserID)
	if err != nil {
		return id.TenantID{}, id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid user claim")
	}
	return tenantID, userID, nil
}
