package main

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nestboard/adminsdk/config"
	"github.com/nestboard/adminsdk/internal/app/routeguard"
	"github.com/nestboard/adminsdk/internal/app/session"
	"github.com/nestboard/adminsdk/internal/infrastructure/auth"
	"github.com/nestboard/adminsdk/internal/infrastructure/cookiex"
	"github.com/nestboard/adminsdk/internal/infrastructure/logger"
)

const loginPath = "/login"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := godotenv.Overload(".env")
	if err != nil {
		log.Debug().Err(err).Msg("failed to load .env file, using environment variables")
	}

	cfg := config.LoadConfig()
	zerolog.SetGlobalLevel(cfg.LogLevel.ZeroLog())

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" && cfg.IsProduction() {
		log.Fatal().Msg("JWT_SECRET is required in production")
	}

	backend, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid api_base_url")
	}
	proxy := httputil.NewSingleHostReverseProxy(backend)
	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		// The CSRF cookie is ground truth; mirror it into the anti-forgery
		// header for mutating requests that arrive without one.
		if req.Method != http.MethodGet && req.Header.Get("X-CSRFToken") == "" {
			if token, ok := cookiex.Get(req.Header.Get("Cookie"), session.CSRFCookieName); ok {
				req.Header.Set("X-CSRFToken", token)
			}
		}
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, proxyErr error) {
		logger.Error(r.Context(), proxyErr).Msg("gateway: backend unreachable")
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	identity := auth.New(jwtSecret)
	rules := routeguard.NewRuleset(routeguard.DefaultRules())
	evaluator := routeguard.NewEvaluator(routeguard.DefaultOverrides())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logger.Logger)
	r.Use(middleware.Recoverer)
	r.Use(identity.IdentityMiddleware)
	r.Use(routeguard.Middleware(rules, evaluator, loginPath))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/*", proxy)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("port", port).Str("backend", cfg.APIBaseURL).Msg("gateway listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped")
	}
}
