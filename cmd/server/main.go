package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"

	"github.com/Sacirovic/rallebola/internal/api"
	"github.com/Sacirovic/rallebola/internal/config"
	"github.com/Sacirovic/rallebola/internal/db"
	"github.com/Sacirovic/rallebola/internal/logging"
	"github.com/Sacirovic/rallebola/internal/metrics"
	"github.com/Sacirovic/rallebola/internal/notify"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: rallebola <init|serve>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: rallebola <init|serve>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdInit(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to SQLite database file")
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: database file %s already exists\n", *dbPath)
		os.Exit(1)
	}

	if err := initDatabase(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database created: %s\n", *dbPath)
	fmt.Println("Schema initialized.")
	fmt.Println()
	fmt.Println("Start the server with `rallebola serve` and register the")
	fmt.Println("first account through POST /api/auth/register.")
}

func cmdServe(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to SQLite database file")
	addr := fs.String("addr", cfg.Addr, "listen address")
	jwtSecret := fs.String("jwt-secret", cfg.JWTSecret, "JWT signing key (auto-generated if empty)")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.Parse(args)

	logging.Setup(*logLevel)

	if *jwtSecret == "" {
		secret, err := randomSecret(32)
		if err != nil {
			slog.Error("generating JWT secret", "error", err)
			os.Exit(1)
		}
		*jwtSecret = secret
		slog.Warn("JWT secret auto-generated, tokens will be invalidated on restart")
	}

	// Auto-init the database on first run.
	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		if err := initDatabase(*dbPath); err != nil {
			slog.Error("initializing database", "error", err)
			os.Exit(1)
		}
		slog.Info("database created", "path", *dbPath)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Migrations are idempotent.
	if err := db.Migrate(database); err != nil {
		slog.Error("migrating database", "error", err)
		os.Exit(1)
	}

	var notifier notify.Notifier = notify.Discard{}
	if cfg.SMTP.Enabled() {
		notifier = &notify.SMTP{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			FromAddress: cfg.SMTP.FromAddress,
			FromName:    cfg.SMTP.FromName,
		}
		slog.Info("mail notifications enabled", "host", cfg.SMTP.Host)
	} else {
		slog.Info("mail notifications disabled, no SMTP host configured")
	}

	handler := api.NewRouter(database, *jwtSecret, notifier, metrics.New())

	slog.Info("server listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initDatabase creates a new database file and runs the migrations.
func initDatabase(path string) error {
	database, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		os.Remove(path)
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// randomSecret creates a random secret of the given length.
func randomSecret(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
