/* 세션 토큰(JWT) 발급 및 검증 */

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"NudgePrototype/internal/apperr"
)

const (
	DefaultIssuer = "nudge-api"
	subject       = "viewer_session"
)

var (
	ErrInvalidToken = fmt.Errorf("auth: invalid token: %w", apperr.ErrInvalidInput)
	ErrTokenExpired = fmt.Errorf("auth: token expired: %w", apperr.ErrInvalidInput)
)

// Claims 구조체, JWT 페이로드에 세션 ID 포함
type Claims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// Signer issues HS256 session tokens. A token is a session handle, not a login.
type Signer struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{key: []byte(secret), ttl: ttl, issuer: DefaultIssuer, now: time.Now}, nil
}

// GenerateToken 세션 토큰 생성
func (s *Signer) GenerateToken(sessionID string) (string, error) {
	now := s.now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken 토큰 검증, 만료와 그 외 오류를 구분함
func (s *Signer) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && verr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.SessionID == "" || claims.Issuer != s.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
