// Command migrate applies or reverts the embedded schema migrations.
//
//	go run ./cmd/migrate -direction up
//	go run ./cmd/migrate -direction status -format json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gtmountains/newsletter/internal/repository"
)

const (
	directionUp     = "up"
	directionDown   = "down"
	directionStatus = "status"
)

type output struct {
	Direction  string                       `json:"direction"`
	Applied    int                          `json:"applied"`
	Migrations []repository.MigrationStatus `json:"migrations,omitempty"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		direction   = flag.String("direction", directionUp, "Migration direction: up, down or status")
		format      = flag.String("format", "plain", "Output format: plain or json")
		timeout     = flag.Duration("timeout", time.Minute, "Maximum time to wait for migrations")
	)
	flag.Parse()

	if err := run(*databaseURL, *direction, *format, *timeout, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// run validates its arguments before touching the database, so bad flags
// never open a connection.
func run(databaseURL, direction, format string, timeout time.Duration, w io.Writer) error {
	if databaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	dir, err := parseDirection(direction)
	if err != nil {
		return err
	}

	if _, err := formatName(format); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	repo, err := repository.New(ctx, databaseURL, repository.DefaultPoolOptions())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer repo.Close()

	out := output{Direction: dir}

	switch dir {
	case directionUp:
		out.Applied, err = repo.Migrate(ctx)
	case directionDown:
		out.Applied, err = repo.MigrateDown(ctx)
	}
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if out.Migrations, err = repo.MigrationStatuses(ctx); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}

	return writeOutput(w, format, out)
}

func parseDirection(input string) (string, error) {
	switch dir := strings.ToLower(strings.TrimSpace(input)); dir {
	case directionUp, directionDown, directionStatus:
		return dir, nil
	case "":
		return directionUp, nil
	default:
		return "", fmt.Errorf("invalid direction: %s", input)
	}
}

func formatName(input string) (string, error) {
	switch f := strings.ToLower(input); f {
	case "plain", "json":
		return f, nil
	default:
		return "", errors.New("invalid format; use plain or json")
	}
}

func writeOutput(w io.Writer, format string, out output) error {
	f, err := formatName(format)
	if err != nil {
		return err
	}

	switch f {
	case "plain":
		if out.Direction != directionStatus {
			fmt.Fprintf(w, "applied %d migration(s) %s\n", out.Applied, out.Direction)
		}
		for _, m := range out.Migrations {
			state := "pending"
			if m.Applied {
				state = "applied " + m.AppliedAt.UTC().Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\n", m.ID, state)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return nil
}
