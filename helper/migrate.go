package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"billiard/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

var ErrUnknownAction = errors.New("unknown migration action")

type migration struct {
	run  func(mig *migrate.Migrate) error
	done string
}

// migrations maps a cmd/migrate direction onto the schema change it applies.
var migrations = map[string]migration{
	"up": {
		run:  func(mig *migrate.Migrate) error { return mig.Up() },
		done: "Billiard schema is up to date",
	},
	"step-up": {
		run:  func(mig *migrate.Migrate) error { return mig.Steps(1) },
		done: "Billiard schema moved one version forward",
	},
	"down": {
		run:  func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		done: "Billiard schema moved one version back",
	},
	"drop": {
		run:  func(mig *migrate.Migrate) error { return mig.Down() },
		done: "Billiard schema removed",
	},
	"version": {
		run: func(mig *migrate.Migrate) error {
			version, dirty, err := mig.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info().Msg("Billiard schema has no migrations applied")

				return nil
			}

			if err != nil {
				return err
			}

			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Billiard schema version")

			return nil
		},
	},
}

func databaseName(cfg *config.Config) string {
	return cfg.DB.Postgres.Prefix + cfg.DB.Postgres.Write.Name
}

// databaseURL builds the migrate DSN for the write database, escaping credentials.
func databaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)
	query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + databaseName(cfg),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Runner applies a migration action: up, down (one step back), step-up (one step forward),
// drop (everything down) or version (log the current version).
func Runner(cfg *config.Config, action string) error {
	step, ok := migrations[action]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(cfg.DB.Postgres.MigrationSource, databaseURL(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance from %s: %w", cfg.DB.Postgres.MigrationSource, err)
	}

	defer mig.Close()

	if err := step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	if step.done != "" {
		log.Info().Str("action", action).Msg(step.done)
	}

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, "up")
}
