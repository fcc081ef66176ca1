package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin is the only role the planner issues.
const RoleAdmin = "admin"

type JWTManager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

// AdminToken is a signed admin session.
type AdminToken struct {
	Token     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
	JTI       string    `json:"jti"`
	Method    string    `json:"method"`
}

func NewJWTManager(privatePath, publicPath, issuer string) (*JWTManager, error) {
	privPem, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPem)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubPem, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPem)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &JWTManager{
		privateKey: privKey,
		publicKey:  pubKey,
		issuer:     issuer,
	}, nil
}

// NewJWTManagerFromKey wraps an in-memory key pair.
func NewJWTManagerFromKey(key *rsa.PrivateKey, issuer string) *JWTManager {
	return &JWTManager{privateKey: key, publicKey: &key.PublicKey, issuer: issuer}
}

// LoadOrGenerate reads the PEM files, falling back to a fresh 2048-bit key
// when the private key file does not exist. Tokens signed with a generated
// key do not survive a restart.
func LoadOrGenerate(privatePath, publicPath, issuer string) (*JWTManager, bool, error) {
	if _, err := os.Stat(privatePath); errors.Is(err, os.ErrNotExist) {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, false, fmt.Errorf("generate key: %w", err)
		}
		return NewJWTManagerFromKey(key, issuer), true, nil
	}
	m, err := NewJWTManager(privatePath, publicPath, issuer)
	return m, false, err
}

// PublicKey is used by the middleware to verify signatures.
func (m *JWTManager) PublicKey() *rsa.PublicKey {
	return m.publicKey
}

// IssueAdminToken signs an admin session for subject. method records how
// the panel was unlocked (passcode or ldap).
func (m *JWTManager) IssueAdminToken(subject, method string, ttl time.Duration) (*AdminToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	jti := uuid.New().String()

	claims := jwt.MapClaims{
		"iss":         m.issuer,
		"sub":         subject,
		"iat":         now.Unix(),
		"exp":         exp.Unix(),
		"jti":         jti,
		"role":        RoleAdmin,
		"auth_method": method,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenStr, err := token.SignedString(m.privateKey)
	if err != nil {
		return nil, err
	}
	return &AdminToken{Token: tokenStr, ExpiresAt: exp, JTI: jti, Method: method}, nil
}

// VerifyToken checks the RS256 signature, expiry and issuer.
func (m *JWTManager) VerifyToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodRS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.publicKey, nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithIssuer(m.issuer))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
