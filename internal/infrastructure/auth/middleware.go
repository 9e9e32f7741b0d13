package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nestboard/adminsdk/internal/app/session"
	"github.com/nestboard/adminsdk/internal/infrastructure/contextx"
	"github.com/nestboard/adminsdk/internal/infrastructure/cookiex"
)

// SessionClaims is the identity payload the backend signs into the session
// cookie: who the user is and the flattened permission strings their roles
// grant.
type SessionClaims struct {
	SuperAdmin  bool     `json:"is_super_admin"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type authService struct {
	cfg *config
}

type config struct {
	JWTSecret string
}

func New(jwtSecret string) *authService {
	return &authService{
		cfg: &config{
			JWTSecret: jwtSecret,
		},
	}
}

// IdentityMiddleware resolves the session cookie into a contextx.Identity.
// An absent or unverifiable cookie leaves the request anonymous; the route
// guard decides what anonymous is allowed to see.
func (s *authService) IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionKey, ok := cookiex.Get(r.Header.Get("Cookie"), session.SessionCookieName)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx = contextx.SetToContext(ctx, contextx.ContextKeySessionKey, sessionKey)

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(sessionKey, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("auth.IdentityMiddleware: invalid session cookie")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("auth.IdentityMiddleware: invalid user ID in session cookie")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		identity := contextx.Identity{
			UserID:      userID,
			SuperAdmin:  claims.SuperAdmin,
			Permissions: claims.Permissions,
		}
		ctx = contextx.SetToContext(ctx, contextx.ContextKeyUserID, userID)
		ctx = contextx.SetToContext(ctx, contextx.ContextKeyIdentity, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
