package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/infrastructure/migration"
	"github.com/atlas/backend/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	// create and list work on files only
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(diskPath(migrationsPath), args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created successfully",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		list, err := migration.ListMigrations(diskPath(migrationsPath))
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(list) == 0 {
			log.Info("No migrations found")
			return
		}
		log.Info("Available migrations", zap.Int("count", len(list)))
		for _, m := range list {
			fmt.Println("  -", m)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	var m *migration.Migrator
	if migrationsPath == "" {
		log.Info("Migration CLI started", zap.String("command", command), zap.String("source", "embedded"))
		m, err = migration.NewFromFS(db, migrations.FS, log)
	} else {
		path := diskPath(migrationsPath)
		log.Info("Migration CLI started", zap.String("command", command), zap.String("source", path))
		m, err = migration.New(db, path, log)
	}
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	cmd, ok := dbCommands[command]
	if !ok {
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
	if len(args)-1 < cmd.args {
		log.Fatal("Missing argument", zap.String("usage", "migrate "+cmd.usage))
	}
	if err := cmd.run(m, args[1:], log); err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

// dbCommand is a subcommand that needs a live migrator
type dbCommand struct {
	usage string
	args  int
	run   func(m *migration.Migrator, args []string, log *zap.Logger) error
}

var dbCommands = map[string]dbCommand{
	"up": {usage: "up", run: func(m *migration.Migrator, _ []string, _ *zap.Logger) error {
		return m.Up()
	}},
	"skip-login-index": {usage: "skip-login-index", run: func(m *migration.Migrator, _ []string, _ *zap.Logger) error {
		return m.SkipLoginIndex()
	}},
	"down": {usage: "down", run: func(m *migration.Migrator, _ []string, _ *zap.Logger) error {
		return m.Down()
	}},
	"step": {usage: "step <n>", args: 1, run: func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return m.Steps(n)
	}},
	"goto": {usage: "goto <version>", args: 1, run: func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(v))
	}},
	"force": {usage: "force <version>", args: 1, run: func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(v)
	}},
	"version": {usage: "version", run: func(m *migration.Migrator, _ []string, log *zap.Logger) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if v == 0 {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Current migration version",
			zap.Uint("version", v),
			zap.Bool("dirty", dirty),
			zap.Bool("login_index", v >= migration.LoginIndexVersion),
		)
		return nil
	}},
}

// diskPath resolves the migrations directory for commands that touch files
func diskPath(path string) string {
	if path == "" {
		path = defaultMigrationsPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func printUsage() {
	fmt.Println(`Atlas Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  skip-login-index      Apply everything before the optional login-index columns
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations

Flags:
  -path string          Read migrations from disk instead of the embedded set
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  ATLAS_DATABASE_HOST, ATLAS_DATABASE_PORT, ATLAS_DATABASE_USER,
  ATLAS_DATABASE_PASSWORD, ATLAS_DATABASE_DBNAME, ATLAS_DATABASE_SSLMODE

Examples:
  migrate up
  migrate step -1
  migrate create add_delivery_zone "Add delivery zone to customers"
  migrate version`)
}
