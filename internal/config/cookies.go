package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookies binds a browser to a client id. The signed token is split in two
// cookies: "auth" (header and payload, readable by scripts) and "sign"
// (signature, http only).
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
	now      func() time.Time
}

type ClientClaims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

func newClientID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func NewCookies(j *JWT) (*Cookies, error) {
	secure := os.Getenv("COOKIES_SECURE") != "0"

	sameSite := http.SameSiteLaxMode
	switch strings.ToUpper(os.Getenv("COOKIES_SAMESITE")) {
	case "DEFAULT":
		sameSite = http.SameSiteDefaultMode
	case "", "LAX":
		sameSite = http.SameSiteLaxMode
	case "STRICT":
		sameSite = http.SameSiteStrictMode
	case "NONE":
		sameSite = http.SameSiteNoneMode
	default:
		return nil, fmt.Errorf("COOKIES_SAMESITE must be one of default, lax, strict, none")
	}

	cookies := &Cookies{
		Domain:   os.Getenv("COOKIES_DOMAIN"),
		Secure:   secure,
		SameSite: sameSite,
		jwt:      j,
		now:      time.Now,
	}

	return cookies, nil
}

// Issue creates claims for a new client and writes them to w.
func (c *Cookies) Issue(w http.ResponseWriter) (*ClientClaims, error) {
	clientID, err := newClientID()
	if err != nil {
		return nil, fmt.Errorf("unable to generate client id: %w", err)
	}
	now := c.now()
	claims := &ClientClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.jwt.TokenLifetime())),
		},
	}
	token, err := c.jwt.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("unable to sign client claims: %w", err)
	}
	if err := c.Refresh(w, token); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Cookies) Refresh(w http.ResponseWriter, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	expires := c.now().Add(c.jwt.TokenLifetime())
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    header + "." + payload,
		Expires:  expires,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    signature,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

func (c *Cookies) ParseClientClaims(r *http.Request) (*ClientClaims, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	token, err := c.jwt.ParseWithClaims(
		authCookie.Value+"."+signCookie.Value, &ClientClaims{},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ClientClaims)
	if !ok || claims.ClientID == "" {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
