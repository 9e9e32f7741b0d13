package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nestboard/adminsdk/config"
	"github.com/nestboard/adminsdk/internal/app/api"
	"github.com/nestboard/adminsdk/internal/app/inbox"
	"github.com/nestboard/adminsdk/internal/app/listing"
	"github.com/nestboard/adminsdk/internal/app/session"
	"github.com/nestboard/adminsdk/internal/infrastructure/system"
)

// dashctl is an operator CLI over the dashboard backend. It drives the same
// client stack the gateway fronts, which also makes it a quick smoke check
// against a running backend.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := godotenv.Overload(".env")
	if err != nil {
		log.Debug().Err(err).Msg("failed to load .env file, using environment variables")
	}

	cfg := config.LoadConfig()
	zerolog.SetGlobalLevel(cfg.LogLevel.ZeroLog())

	sessionCookie := flag.String("session", os.Getenv("DASH_SESSION"), "session cookie value")
	pageNum := flag.Int("page", 1, "page number")
	pageSize := flag.Int("size", 10, "page size")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dashctl [flags] <listings|inbox|export>")
		os.Exit(2)
	}

	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid api_base_url")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("cookie jar")
	}
	if *sessionCookie != "" {
		jar.SetCookies(base, []*http.Cookie{{Name: session.SessionCookieName, Value: *sessionCookie}})
	}

	tokens := session.NewManager(&system.TimeGenerator{}, session.NewJarSource(jar, base), session.NewMemoryStore())
	client := api.NewClient(
		api.Config{BaseURL: cfg.APIBaseURL, AdminPathSecret: cfg.AdminPathSecret},
		&http.Client{Jar: jar, Timeout: 30 * time.Second},
		tokens,
		func(returnTo string) {
			log.Warn().Str("return_to", returnTo).Msg("session expired, log in again")
		},
	)

	ctx := context.Background()
	page := api.Page{Page: *pageNum, Size: *pageSize}

	switch flag.Arg(0) {
	case "listings":
		items, pagination, err := listing.NewClient(client).List(ctx, page, listing.Filter{})
		if err != nil {
			log.Fatal().Err(err).Msg("list listings")
		}
		printPage(items, pagination)
	case "inbox":
		items, pagination, err := inbox.NewClient(client).List(ctx, page, false)
		if err != nil {
			log.Fatal().Err(err).Msg("list inbox")
		}
		printPage(items, pagination)
	case "export":
		raw, contentType, err := listing.NewClient(client).Export(ctx, listing.Filter{})
		if err != nil {
			log.Fatal().Err(err).Msg("export listings")
		}
		log.Info().Str("content_type", contentType).Int("bytes", len(raw)).Msg("export downloaded")
		_, _ = os.Stdout.Write(raw)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		os.Exit(2)
	}
}

func printPage[T any](items []T, pagination api.Pagination) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(items)
	log.Info().
		Int("count", pagination.Count).
		Int("current_page", pagination.CurrentPage).
		Int("total_pages", pagination.TotalPages).
		Msg("page")
}
