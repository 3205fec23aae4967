package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nafisahi/swiftaid/internal/api"
	"github.com/nafisahi/swiftaid/internal/auth"
	"github.com/nafisahi/swiftaid/internal/catalog"
	"github.com/nafisahi/swiftaid/internal/connectivity"
	"github.com/nafisahi/swiftaid/internal/lockfile"
	"github.com/nafisahi/swiftaid/internal/notify"
	"github.com/nafisahi/swiftaid/internal/store"
	"github.com/nafisahi/swiftaid/internal/symptoms"
	"github.com/nafisahi/swiftaid/internal/telephony"
	"github.com/nafisahi/swiftaid/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for SwiftAid state data
	DefaultStateDir = "/var/lib/swiftaid"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "swiftaid.db"
	// ShutdownTimeout bounds graceful shutdown of the HTTP server
	ShutdownTimeout = 10 * time.Second
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Only one instance may own the state directory
	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		slog.Error("Failed to acquire state directory lock", "error", err)
		os.Exit(1)
	}
	defer lock.Release()

	if err := run(flags); err != nil {
		slog.Error("SwiftAid failed to run", "error", err)
		lock.Release()
		os.Exit(1)
	}
	slog.Info("SwiftAid exited successfully")
}

func run(flags Flags) error {
	cat, err := catalog.New()
	if err != nil {
		slog.Error("Failed to load guidance catalog", "error", err)
		return err
	}
	slog.Info("Guidance catalog loaded", "topics", len(cat.AllTopics()))

	st, err := buildStore(flags)
	if err != nil {
		return err
	}
	defer st.Close()

	dispatcher, err := buildDispatcher(flags)
	if err != nil {
		return err
	}
	identity := auth.NewService(st, dispatcher)

	monitor := connectivity.NewMonitor(buildConnectivityOptions(flags)...)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	monitor.Start(ctx)
	defer monitor.Stop()

	apiOpts := []api.Option{api.WithConnectivityMonitor(monitor)}
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}

	if *flags.openaiKey != "" {
		os.Setenv("OPENAI_API_KEY", *flags.openaiKey)
	}
	checker, err := symptoms.NewChecker(monitor)
	if err != nil {
		slog.Warn("Symptom checker disabled", "error", err)
	} else {
		apiOpts = append(apiOpts, api.WithSymptomChecker(checker))
	}

	dialer, err := telephony.NewTwilioDialer()
	if err != nil {
		slog.Warn("Emergency calling disabled", "error", err)
	} else {
		apiOpts = append(apiOpts, api.WithDialer(dialer))
	}

	server := api.NewServer(cat, identity, st, apiOpts...)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// Config holds environment configuration
type Config struct {
	DatabaseURL string
	StateDir    string
	OpenAIKey   string
	APIAddr     string
	SMTPHost    string
	TwilioSID   string
	ProbeURL    string
}

// Flags holds command line flag values
type Flags struct {
	stateDir  *string
	dbDSN     *string
	openaiKey *string
	apiAddr   *string
	notifyVia *string
	probeURL  *string
}

// initializeLogger sets up structured logging. Debug logging is on by
// default and can be silenced with SWIFTAID_DEBUG=false.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("SWIFTAID_DEBUG", true) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StateDir:    util.EnvOrDefault("SWIFTAID_STATE_DIR", DefaultStateDir),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		APIAddr:     os.Getenv("API_ADDR"),
		SMTPHost:    os.Getenv("SMTP_HOST"),
		TwilioSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		ProbeURL:    os.Getenv("CONNECTIVITY_PROBE_URL"),
	}

	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"SWIFTAID_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr,
		"SMTP_HOST_SET", config.SMTPHost != "",
		"TWILIO_ACCOUNT_SID_SET", config.TwilioSID != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	defaultNotify := "smtp"
	if config.SMTPHost == "" && config.TwilioSID != "" {
		defaultNotify = "sms"
	}

	flags := Flags{
		stateDir:  flag.String("state-dir", config.StateDir, "state directory for SwiftAid data (overrides $SWIFTAID_STATE_DIR)"),
		dbDSN:     flag.String("db-dsn", config.DatabaseURL, "database DSN for the account store (overrides $DATABASE_URL)"),
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key for the symptom checker (overrides $OPENAI_API_KEY)"),
		apiAddr:   flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		notifyVia: flag.String("notify-via", defaultNotify, "verification code channel: smtp or sms"),
		probeURL:  flag.String("probe-url", config.ProbeURL, "connectivity probe URL (overrides $CONNECTIVITY_PROBE_URL)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr,
		"notifyVia", *flags.notifyVia)

	// Update database DSN if not explicitly set but state directory is provided
	if *flags.dbDSN == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// buildStore constructs the account store from the configured DSN.
func buildStore(flags Flags) (store.Store, error) {
	if *flags.dbDSN == "" {
		slog.Debug("No database DSN provided, using in-memory store")
		return store.NewInMemoryStore(), nil
	}
	if store.DetectDSNType(*flags.dbDSN) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store")
		return store.NewPostgresStore(store.WithPostgresDSN(*flags.dbDSN))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
	return store.NewSQLiteStore(store.WithSQLiteDSN(*flags.dbDSN))
}

// buildDispatcher constructs the verification code dispatcher.
func buildDispatcher(flags Flags) (notify.Dispatcher, error) {
	if *flags.notifyVia == "sms" {
		slog.Debug("Configuring SMS code dispatch")
		return notify.NewTwilioSMSDispatcher()
	}
	slog.Debug("Configuring SMTP code dispatch")
	return notify.NewSMTPDispatcher()
}

// buildConnectivityOptions constructs connectivity monitor options.
func buildConnectivityOptions(flags Flags) []connectivity.Option {
	var opts []connectivity.Option
	if *flags.probeURL != "" {
		opts = append(opts, connectivity.WithProbeURL(*flags.probeURL))
	}
	return opts
}
