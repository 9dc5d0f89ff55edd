package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/closurelabs/traininglog/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UID     string `json:"uid"`
	Role    string `json:"role"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) IssueToken(u *models.User) (string, error) {
	return m.sign(u, "", m.ttl)
}

// IssueResetToken is short-lived and single-purpose; a session token
// never passes as a reset token and vice versa.
func (m *Manager) IssueResetToken(u *models.User) (string, error) {
	return m.sign(u, "reset", 30*time.Minute)
}

func (m *Manager) sign(u *models.User, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:     u.ID,
		Role:    string(u.Role),
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) ParseToken(token string) (*Claims, error) {
	return m.parse(token, "")
}

func (m *Manager) ParseResetToken(token string) (*Claims, error) {
	return m.parse(token, "reset")
}

func (m *Manager) parse(token, purpose string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

const passwordAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

// RandomPassword generates the throwaway credential handed to a newly
// provisioned trainer, shown once in the create response.
func RandomPassword() (string, error) {
	out := make([]byte, 8)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
