// Package main is the asset console, a command line surface over the game
// asset admin API. It keeps one authenticated session per invocation,
// persisted in a local SQLite store so logins survive process restarts.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/louisbranch/assetdeck/internal/api"
	"github.com/louisbranch/assetdeck/internal/guard"
	"github.com/louisbranch/assetdeck/internal/platform/config"
	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
	"github.com/louisbranch/assetdeck/internal/platform/otel"
	"github.com/louisbranch/assetdeck/internal/platform/timeouts"
	"github.com/louisbranch/assetdeck/internal/session"
	sessionsqlite "github.com/louisbranch/assetdeck/internal/session/storage/sqlite"
)

type settings struct {
	APIBaseURL string `env:"ASSETDECK_API_URL" envDefault:"http://localhost:8080"`
	DBPath     string `env:"ASSETDECK_DB_PATH" envDefault:"data/assetdeck.db"`
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: console <command> [flags]

Commands:
  login       authenticate and persist the session
  logout      clear the persisted session
  whoami      show the active session profile
  summary     show dashboard asset counts
  characters  manage character records (list|show|create|update|delete)
  pets        manage pet records (list|show|create|update|delete)
  vehicles    manage vehicle records (list|show|create|update|delete)`)
}

func main() {
	var cfg settings
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("Error: %v", err)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdown, err := otel.Setup(ctx, "assetdeck-console")
	if err != nil {
		config.Exitf("Error: setup tracing: %v", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer flushCancel()
		if err := shutdown(flushCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: shutdown tracing: %v\n", err)
		}
	}()

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			config.Exitf("Error: create storage directory: %v", err)
		}
	}
	credStore, err := sessionsqlite.Open(cfg.DBPath)
	if err != nil {
		config.Exitf("Error: open credential store: %v", err)
	}
	defer func() {
		if err := credStore.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: close credential store: %v\n", err)
		}
	}()

	var sessions *session.Store
	client := api.New(cfg.APIBaseURL, func() string { return sessions.Token() }, nil)
	sessions = session.New(client, credStore)

	if err := sessions.Restore(ctx); err != nil {
		config.Exitf("Error: restore session: %v", err)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		err = runLogin(ctx, sessions, rest)
	case "logout":
		err = sessions.Logout(ctx)
	case "whoami":
		err = runWhoami(sessions)
	case "summary":
		err = requireSession(sessions, func() error { return runSummary(ctx, client) })
	case "characters":
		err = requireSession(sessions, func() error { return runCharacters(ctx, client, rest) })
	case "pets":
		err = requireSession(sessions, func() error { return runPets(ctx, client, rest) })
	case "vehicles":
		err = requireSession(sessions, func() error { return runVehicles(ctx, client, rest) })
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		if command != "login" && apperrors.CodeOf(err).IsAuth() {
			_ = sessions.Logout(ctx)
			config.Exitf("Error: %s; run `console login` again", apperrors.MessageOf(err))
		}
		config.Exitf("Error: %v", err)
	}
}

// requireSession gates protected commands on the session guard. Commands
// never run half-authenticated: either a session is active or the user is
// told to log in.
func requireSession(sessions *session.Store, run func() error) error {
	switch guard.Resolve(sessions) {
	case guard.StateReady:
		return run()
	case guard.StateLoading:
		return fmt.Errorf("session is still being resolved, try again")
	default:
		return fmt.Errorf("not logged in; run `console login` first")
	}
}

func runLogin(ctx context.Context, sessions *session.Store, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "administrator email")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("-email is required")
	}
	if *password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimSpace(line)
	}

	if _, err := sessions.Login(ctx, *email, *password); err != nil {
		return err
	}
	current := sessions.Current()
	fmt.Printf("Logged in as %s\n", current.User.Email)
	return nil
}

func runWhoami(sessions *session.Store) error {
	current := sessions.Current()
	if current == nil {
		fmt.Println("not logged in")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", current.User.ID)
	fmt.Fprintf(w, "EMAIL\t%s\n", current.User.Email)
	fmt.Fprintf(w, "NAME\t%s\n", current.User.DisplayName)
	fmt.Fprintf(w, "SINCE\t%s\n", current.CreatedAt.Format("2006-01-02 15:04:05"))
	return w.Flush()
}

func runSummary(ctx context.Context, client *api.Client) error {
	summary, err := client.Summary(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "CHARACTERS\t%d\n", summary.CharacterCount)
	fmt.Fprintf(w, "PETS\t%d\n", summary.PetCount)
	fmt.Fprintf(w, "VEHICLES\t%d\n", summary.VehicleCount)
	return w.Flush()
}
