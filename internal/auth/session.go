// internal/auth/session.go issues and verifies the ed25519-signed JWTs
// carried in the auth_token cookie. Keys are generated fresh at startup
// unless loaded from disk, so tokens do not survive a restart by default.
package auth

import (
	"crypto/ed25519"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the websocket and API handlers read the session
// token from.
const CookieName = "auth_token"

var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// tokenTTL is how long issued tokens stay valid. Zero means no expiry.
	tokenTTL time.Duration
)

// Init generates a fresh ed25519 key pair at runtime and reads the token
// lifetime from TOKEN_EXPIRE_TIME (a Go duration, "never", or empty).
func Init() error {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}
	return parseTokenTTL()
}

// InitFromPath loads an ed25519 key pair from files instead of generating one.
func InitFromPath(privatePath, publicPath string) error {
	priv, err := os.ReadFile(privatePath)
	if err != nil {
		return fmt.Errorf("failed to read private key file: %w", err)
	}
	pub, err := os.ReadFile(publicPath)
	if err != nil {
		return fmt.Errorf("failed to read public key file: %w", err)
	}
	privateKey = ed25519.PrivateKey(priv)
	publicKey = ed25519.PublicKey(pub)
	return parseTokenTTL()
}

func parseTokenTTL() error {
	raw := os.Getenv("TOKEN_EXPIRE_TIME")
	if raw == "" || raw == "never" || raw == "0" {
		tokenTTL = 0
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("failed to parse TOKEN_EXPIRE_TIME: %w", err)
	}
	tokenTTL = d
	return nil
}

// CreateJWT signs a token whose subject is the user id.
func CreateJWT(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
	}
	if tokenTTL > 0 {
		claims["exp"] = time.Now().Add(tokenTTL).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// AuthenticateJWT verifies a token string and returns the user id it was
// issued for.
func AuthenticateJWT(tokenString string) (int64, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("jwt parse error: %w", err)
	}
	if !t.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid jwt claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("missing sub in jwt")
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed sub in jwt: %w", err)
	}
	return userID, nil
}

// SetSessionCookie attaches an auth_token cookie to the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the auth_token cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})
}

// UserIDFromRequest resolves the authenticated user id from the request's
// session cookie.
func UserIDFromRequest(r *http.Request) (int64, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return 0, fmt.Errorf("missing %s cookie", CookieName)
	}
	return AuthenticateJWT(c.Value)
}
