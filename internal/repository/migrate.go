package repository

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationTable keeps sql-migrate bookkeeping out of the default gorp table name.
const migrationTable = "schema_migrations"

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// Migrate applies all pending up migrations.
// It blocks until migrations finish or ctx is done.
func (r *Repository) Migrate(ctx context.Context) (int, error) {
	return r.runMigrations(ctx, migrate.Up)
}

// MigrateDown reverts every applied migration. Used by tests to reset the schema.
func (r *Repository) MigrateDown(ctx context.Context) (int, error) {
	return r.runMigrations(ctx, migrate.Down)
}

func (r *Repository) runMigrations(ctx context.Context, dir migrate.MigrationDirection) (int, error) {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	set := migrate.MigrationSet{TableName: migrationTable}

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := set.Exec(db, "postgres", migrationSource(), dir)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("migration timeout: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return 0, fmt.Errorf("db migrations have failed: %w", res.err)
		}
		slog.Default().InfoContext(ctx, "applied migrations",
			slog.Int("count", res.n),
			slog.String("direction", directionName(dir)),
		)
		return res.n, nil
	}
}

func directionName(dir migrate.MigrationDirection) string {
	if dir == migrate.Down {
		return "down"
	}
	return "up"
}

// MigrationStatus describes one embedded migration.
type MigrationStatus struct {
	ID        string     `json:"id"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

// MigrationStatuses lists every embedded migration and whether it has been applied.
func (r *Repository) MigrationStatuses(ctx context.Context) ([]MigrationStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	migrations, err := migrationSource().FindMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	set := migrate.MigrationSet{TableName: migrationTable}
	records, err := set.GetMigrationRecords(db, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration records: %w", err)
	}

	applied := make(map[string]time.Time, len(records))
	for _, rec := range records {
		applied[rec.Id] = rec.AppliedAt
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		status := MigrationStatus{ID: m.Id}
		if at, ok := applied[m.Id]; ok {
			status.Applied = true
			status.AppliedAt = &at
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
