package main

import (
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/postgres"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/config"
)

var (
	down = flag.Bool("down", false, "run migration down")
	dir  = flag.String("dir", "", "migrations directory (overrides POSTGRESQL_MIGRATIONS_DIR)")
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
}

func main() {
	flag.Parse()
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("error loading configuration")
	}
	if *dir != "" {
		cfg.Postgres.MigrationsDir = *dir
	}
	log.WithField("dir", cfg.Postgres.MigrationsDir).WithField("down", *down).Info("running migrations")

	if err := postgres.Migrate(cfg.Postgres.URL, cfg.Postgres.MigrationsDir, *down); err != nil {
		log.WithError(err).Fatal("error migrating")
	}
	log.Info("migrations applied")
}
