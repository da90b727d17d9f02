package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const linkIssuer = "ai-trip-planner"

// LinkSigner issues short-lived download links for a chat's calendar file.
type LinkSigner struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
}

func NewLinkSigner(secret, baseURL string, ttl time.Duration) *LinkSigner {
	return &LinkSigner{secret: []byte(secret), baseURL: baseURL, ttl: ttl}
}

// Sign returns a token naming chatID, valid for the signer's TTL from now.
func (s *LinkSigner) Sign(chatID int64, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    linkIssuer,
		Subject:   strconv.FormatInt(chatID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign calendar link: %w", err)
	}
	return signed, nil
}

// URL is Sign wrapped into the public download address.
func (s *LinkSigner) URL(chatID int64, now time.Time) (string, error) {
	token, err := s.Sign(chatID, now)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/calendar/" + token, nil
}

// Verify checks the signature and expiry and returns the chat ID.
func (s *LinkSigner) Verify(token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(linkIssuer))
	if err != nil {
		return 0, fmt.Errorf("invalid calendar link: %w", err)
	}
	chatID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("invalid calendar link subject")
	}
	return chatID, nil
}
