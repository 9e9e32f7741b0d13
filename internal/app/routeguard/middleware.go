package routeguard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nestboard/adminsdk/internal/infrastructure/contextx"
	"github.com/nestboard/adminsdk/internal/infrastructure/logger"
)

// Middleware gates requests by the rule table before they reach the proxy.
// Unmatched paths pass through (default-open); a matched rule with no
// identity redirects to login carrying return_to; a deny renders a 403 in
// the backend's envelope shape.
func Middleware(rules *Ruleset, eval *Evaluator, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			path := NormalizePath(r.URL.Path)

			rule, found := rules.FindRule(path)
			if !found {
				zerolog.Ctx(ctx).Debug().Str("path", path).Msg("routeguard: no rule, allowing")
				next.ServeHTTP(w, r)
				return
			}

			identity, err := contextx.GetIdentity(ctx)
			if err != nil {
				redirect := loginPath + "?return_to=" + url.QueryEscape(path)
				http.Redirect(w, r, redirect, http.StatusFound)
				return
			}

			subject := Subject{
				UserID:      identity.UserID,
				SuperAdmin:  identity.SuperAdmin,
				Permissions: identity.Permissions,
			}
			decision := eval.Evaluate(rule, subject, targetFromPath(rule, path))
			if !decision.Allowed {
				logger.Warn(ctx, nil).
					Str("path", path).
					Str("rule_id", rule.ID).
					Str("reason", decision.Reason).
					Msg("routeguard: denied")
				writeDenied(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// targetFromPath recovers the addressed resource identity from the ":id"
// pattern segment, when the path carries one.
func targetFromPath(rule Rule, path string) Target {
	patternSegs := strings.Split(NormalizePath(rule.Pattern), "/")
	pathSegs := strings.Split(path, "/")

	var target Target
	for i, seg := range patternSegs {
		if seg != ":id" || i >= len(pathSegs) {
			continue
		}
		if id, err := uuid.Parse(pathSegs[i]); err == nil {
			target.UserID = id
			target.OwnerID = id
		}
	}

	return target
}

func writeDenied(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"metaData": map[string]any{
			"status":        "error",
			"message":       "Access denied",
			"AppStatusCode": http.StatusForbidden,
		},
		"data": nil,
	})
}
