package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

var (
	// ErrInvalidToken is returned when a token fails signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrWrongTokenType is returned when a token of the wrong type is presented.
	ErrWrongTokenType = errors.New("wrong token type")
)

// TokenPair is the refresh+access pair issued after registration or login.
type TokenPair struct {
	Access     string
	AccessJTI  string
	Refresh    string
	RefreshJTI string
}

// Claims carries the verified identity extracted from a token.
type Claims struct {
	UserID string
	JTI    string
	Type   TokenType
}

// JWTService signs and verifies HS256 tokens.
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a new JWTService.
func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the access token lifetime.
func (s *JWTService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the refresh token lifetime.
func (s *JWTService) RefreshTTL() time.Duration { return s.refreshTTL }

// Generate signs a token of the given type for a user, returning the signed
// token and its JTI.
func (s *JWTService) Generate(userID string, tokenType TokenType) (string, string, error) {
	ttl := s.accessTTL
	if tokenType == TokenTypeRefresh {
		ttl = s.refreshTTL
	}

	jti := uuid.New().String()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"jti":  jti,
		"type": string(tokenType),
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// IssuePair signs a refresh+access pair for a user.
func (s *JWTService) IssuePair(userID string) (TokenPair, error) {
	access, accessJTI, err := s.Generate(userID, TokenTypeAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshJTI, err := s.Generate(userID, TokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		Access:     access,
		AccessJTI:  accessJTI,
		Refresh:    refresh,
		RefreshJTI: refreshJTI,
	}, nil
}

// Verify parses a signed token and checks that it is of the expected type.
func (s *JWTService) Verify(tokenStr string, expected TokenType) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	jti, _ := mapClaims["jti"].(string)
	typ, _ := mapClaims["type"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	if TokenType(typ) != expected {
		return nil, ErrWrongTokenType
	}

	return &Claims{UserID: sub, JTI: jti, Type: TokenType(typ)}, nil
}
