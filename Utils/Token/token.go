package Token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const contextKey = "session_claims"

var ErrMissingToken = errors.New("missing token")

type Claims struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	WhatsApp string `json:"whatsapp"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the issuing clock.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// GenerateToken signs an HS256 session token for the given identity.
func (i *Issuer) GenerateToken(userID, role, whatsapp string) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)
	claims := Claims{
		UserID:   userID,
		Role:     role,
		WhatsApp: whatsapp,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractToken reads a bearer token from the Authorization header or the token query parameter.
func ExtractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	bearerToken := c.Request.Header.Get("Authorization")
	if parts := strings.Fields(bearerToken); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// TokenValid parses the request token and stores its claims on the context.
func (i *Issuer) TokenValid(c *gin.Context) (*Claims, error) {
	tokenString := ExtractToken(c)
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims, err := i.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	c.Set(contextKey, claims)
	return claims, nil
}

func ClaimsFromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

func ExtractTokenID(c *gin.Context) (string, error) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return "", ErrMissingToken
	}
	return claims.UserID, nil
}
