package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/config"
	"github.com/esamadhan/volunteer-api/pkg/database"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtAlgorithm = jwt.SigningMethodHS256

// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidAPIKey is returned when an API key signature does not verify
var ErrInvalidAPIKey = errors.New("invalid api key")

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies admin tokens and partner API keys
type Authenticator struct {
	jwtSecret    []byte
	masterSecret []byte
	tokenTTL     time.Duration
	bcryptCost   int
}

// New creates an Authenticator from the auth configuration
func New(cfg config.AuthConfig) *Authenticator {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{
		jwtSecret:    []byte(cfg.JWTSecret),
		masterSecret: []byte(cfg.MasterSecret),
		tokenTTL:     ttl,
		bcryptCost:   14,
	}
}

// WithBcryptCost returns a copy using cost for new password hashes
func (a *Authenticator) WithBcryptCost(cost int) *Authenticator {
	out := *a
	out.bcryptCost = cost
	return &out
}

// HashPassword hashes a password using bcrypt
func (a *Authenticator) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for an admin user
func (a *Authenticator) CreateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(a.jwtSecret)
}

// VerifyToken verifies a JWT token and returns its claims
func (a *Authenticator) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateAPIKey creates a signed API key "<partner>.<hmac-sha256>"
func (a *Authenticator) GenerateAPIKey(partner string) string {
	return partner + "." + a.sign(partner)
}

// VerifyAPIKey validates an HMAC-signed API key and returns the partner name
func (a *Authenticator) VerifyAPIKey(key string) (string, error) {
	idx := strings.LastIndex(key, ".")
	if idx <= 0 || idx == len(key)-1 {
		return "", fmt.Errorf("%w: bad format", ErrInvalidAPIKey)
	}
	partner, provided := key[:idx], key[idx+1:]

	// constant-time comparison
	if !hmac.Equal([]byte(provided), []byte(a.sign(partner))) {
		return "", fmt.Errorf("%w: bad signature", ErrInvalidAPIKey)
	}
	return partner, nil
}

func (a *Authenticator) sign(partner string) string {
	h := hmac.New(sha256.New, a.masterSecret)
	h.Write([]byte(partner))
	return hex.EncodeToString(h.Sum(nil))
}

// KeyPreview masks an API key for listing, e.g. "ngo...9f3a"
func KeyPreview(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}

// EnsureAdminExists creates the configured admin when the users table is empty
func (a *Authenticator) EnsureAdminExists(db *gorm.DB, username, password string) (bool, error) {
	var count int64
	if err := db.Model(&database.MasterUser{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := a.HashPassword(password)
	if err != nil {
		return false, err
	}
	user := database.MasterUser{
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}
