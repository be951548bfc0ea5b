package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/secura-scan/securascan/internal/api"
	"github.com/secura-scan/securascan/internal/breach"
	"github.com/secura-scan/securascan/internal/config"
	"github.com/secura-scan/securascan/internal/db"
	"github.com/secura-scan/securascan/internal/email"
	"github.com/secura-scan/securascan/internal/store"
)

func main() {
	// Parse CLI flags for rule-list maintenance
	var addRule, removeRule string
	flag.StringVar(&addRule, "add-email-rule", "", "Add an email rule as list:value (requires DATABASE_URL)")
	flag.StringVar(&removeRule, "remove-email-rule", "", "Remove an email rule as list:value (requires DATABASE_URL)")
	flag.Parse()

	// Optional .env file; ignore absence
	_ = godotenv.Load()

	if addRule != "" || removeRule != "" {
		if err := runRuleMaintenance(addRule, removeRule); err != nil {
			log.Fatalf("rule maintenance failed: %v", err)
		}
		return
	}

	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting securascan", zap.String("port", cfg.Port), zap.String("version", api.Version))

	// Resolve the email rule set: database, then file, then embedded defaults.
	ruleSet, ruleSource, err := resolveRuleSet(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("email rules: %w", err)
	}
	logger.Info("email rule set loaded", zap.String("source", ruleSource))

	classifier, err := email.NewClassifier(ruleSet)
	if err != nil {
		return fmt.Errorf("email classifier: %w", err)
	}

	lookup := breach.NewClient(breach.ClientConfig{
		BaseURL:             cfg.BreachAPIURL,
		Timeout:             cfg.BreachTimeout,
		MaxIdleConnsPerHost: 4,
	})

	router := api.NewRouter(api.RouterConfig{
		Health:   &api.HealthHandler{},
		Password: api.NewPasswordHandler(lookup, logger),
		Email:    api.NewEmailHandler(classifier, logger),
		Scan:     api.NewScanHandler(logger),
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("shutting down", zap.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		errCh <- srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}

	return <-errCh
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// resolveRuleSet picks the email rule source in precedence order:
// database (when configured and non-empty), rule file, embedded defaults.
func resolveRuleSet(ctx context.Context, cfg *config.Config, logger *zap.Logger) (email.RuleSet, string, error) {
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return email.RuleSet{}, "", fmt.Errorf("database pool: %w", err)
		}
		defer pool.Close()

		sqlDB, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return email.RuleSet{}, "", fmt.Errorf("sql.Open for migrations: %w", err)
		}
		defer sqlDB.Close()

		if err := db.RunMigrations(sqlDB); err != nil {
			return email.RuleSet{}, "", fmt.Errorf("migrations: %w", err)
		}
		logger.Info("database migrations applied")

		rs, err := store.NewEmailRuleStore(pool).LoadRuleSet(ctx)
		if err != nil {
			return email.RuleSet{}, "", err
		}
		if !rs.Empty() {
			return rs, "database", nil
		}
		logger.Warn("email_rules table is empty, falling through")
	}

	if cfg.EmailRulesFile != "" {
		rs, err := email.LoadRuleSetFile(cfg.EmailRulesFile)
		if err != nil {
			return email.RuleSet{}, "", err
		}
		return rs, cfg.EmailRulesFile, nil
	}

	return email.DefaultRuleSet(), "embedded defaults", nil
}

// runRuleMaintenance handles the -add-email-rule / -remove-email-rule flags.
func runRuleMaintenance(addRule, removeRule string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for rule maintenance")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database pool: %w", err)
	}
	defer pool.Close()

	sqlDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	rules := store.NewEmailRuleStore(pool)

	if addRule != "" {
		list, value, err := splitRuleFlag(addRule)
		if err != nil {
			return err
		}
		if err := rules.Add(ctx, &store.EmailRule{List: list, Value: value}); err != nil {
			return err
		}
		fmt.Printf("added %s rule %q\n", list, value)
	}

	if removeRule != "" {
		list, value, err := splitRuleFlag(removeRule)
		if err != nil {
			return err
		}
		if err := rules.Remove(ctx, list, value); err != nil {
			return err
		}
		fmt.Printf("removed %s rule %q\n", list, value)
	}

	return nil
}

func splitRuleFlag(v string) (list, value string, err error) {
	list, value, ok := strings.Cut(v, ":")
	if !ok || list == "" || value == "" {
		return "", "", fmt.Errorf("rule flag must be list:value, got %q", v)
	}
	switch list {
	case store.ListKnownBreached, store.ListKnownSafe, store.ListCommonBreached, store.ListSafePattern:
		return list, value, nil
	default:
		return "", "", fmt.Errorf("unknown rule list %q", list)
	}
}
