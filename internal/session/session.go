// Package session resolves the caller of a request from a PASETO v4 public
// token issued by the auth service.
package session

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"go.uber.org/zap"

	"github.com/staybnb-project/backend/internal/cctx"
)

const (
	CookieName = "session_token"
	Issuer     = "staybnb"
)

type Resolver struct {
	key    paseto.V4AsymmetricPublicKey
	parser paseto.Parser
}

func NewResolver(key paseto.V4AsymmetricPublicKey) *Resolver {
	return &Resolver{
		key: key,
		parser: paseto.MakeParser([]paseto.Rule{
			paseto.IssuedBy(Issuer),
			paseto.NotExpired(),
		}),
	}
}

// NewResolverFromBase64 builds a resolver from a base64 encoded public key.
func NewResolverFromBase64(publicKey string) (r *Resolver, err error) {
	var key paseto.V4AsymmetricPublicKey
	if key, err = loadPasetoPublicKey(publicKey); err != nil {
		return
	}
	r = NewResolver(key)
	return
}

// Resolve returns the token subject, or false for anonymous requests. A nil
// resolver treats every request as anonymous.
func (r *Resolver) Resolve(req *http.Request) (uid string, ok bool) {
	if r == nil {
		return
	}

	raw := tokenFromRequest(req)
	if raw == "" {
		return
	}

	token, err := r.parser.ParseV4Public(r.key, raw, nil)
	if err != nil {
		zap.L().Debug("invalid session token", zap.Error(err))
		return
	}

	if uid, err = token.GetSubject(); err != nil {
		zap.L().Debug("failed to get subject from token", zap.Error(err))
		return
	}
	ok = uid != ""
	return
}

// Middleware stores the caller id in the request context. Requests with a
// missing or invalid token pass through as anonymous.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if uid, ok := r.Resolve(req); ok {
			req = req.WithContext(cctx.WithValues(req.Context(), cctx.UserID, uid))
		}
		next.ServeHTTP(w, req)
	})
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	} else if err != nil && !errors.Is(err, http.ErrNoCookie) {
		zap.L().Debug("unreadable session cookie", zap.Error(err))
	}

	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Signer signs session tokens. The auth service owns issuing in production;
// this is used by the issue-token command and in tests.
type Signer struct {
	key paseto.V4AsymmetricSecretKey
}

func NewSigner(key paseto.V4AsymmetricSecretKey) *Signer {
	return &Signer{key: key}
}

func NewSignerFromBase64(secretKey string) (s *Signer, err error) {
	var key paseto.V4AsymmetricSecretKey
	if key, err = loadPasetoPrivateKey(secretKey); err != nil {
		return
	}
	s = NewSigner(key)
	return
}

func (s *Signer) Sign(subject string, ttl time.Duration) string {
	now := time.Now()
	token := newToken()
	token.SetIssuer(Issuer)
	token.SetExpiration(now.Add(ttl))
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetSubject(subject)
	token.SetAudience("user")
	return token.V4Sign(s.key, nil)
}

func (s *Signer) PublicKey() paseto.V4AsymmetricPublicKey {
	return s.key.Public()
}

// GenerateKeys returns a fresh base64 encoded key pair.
func GenerateKeys() (secretKey, publicKey string) {
	key := paseto.NewV4AsymmetricSecretKey()
	secretKey = base64.StdEncoding.EncodeToString(key.ExportBytes())
	publicKey = base64.StdEncoding.EncodeToString(key.Public().ExportBytes())
	return
}

func loadPasetoPrivateKey(secretKey string) (key paseto.V4AsymmetricSecretKey, err error) {
	var decoded []byte
	if decoded, err = base64.StdEncoding.DecodeString(secretKey); err != nil {
		return
	}

	return paseto.NewV4AsymmetricSecretKeyFromBytes(decoded)
}

func loadPasetoPublicKey(publicKey string) (key paseto.V4AsymmetricPublicKey, err error) {
	var decoded []byte
	if decoded, err = base64.StdEncoding.DecodeString(publicKey); err != nil {
		return
	}

	return paseto.NewV4AsymmetricPublicKeyFromBytes(decoded)
}

// XXX: paseto library is silly
func newToken() *paseto.Token {
	t := paseto.NewToken()
	return &t
}
