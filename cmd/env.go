package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/assessment"
	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/config"
	"github.com/abhisek/upskill/internal/dashboard"
	"github.com/abhisek/upskill/internal/groups"
	"github.com/abhisek/upskill/internal/learning"
	"github.com/abhisek/upskill/internal/llm"
	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/notify"
	"github.com/abhisek/upskill/internal/questions"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/users"
)

// errNotSignedIn is returned by commands that need an active user.
var errNotSignedIn = errors.New("not signed in; run `upskill login` or `upskill register` first")

// env is the wired set of services a command works with.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store

	users     *users.Service
	learning  *learning.Service
	flow      *assessment.Flow
	groups    *groups.Service
	dashboard *dashboard.Service
	notify    *notify.Service

	// aiReason is why AI generation is unavailable, empty when it is.
	aiReason string
	// seeded is set when this run loaded the course catalog.
	seeded bool
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then UPSKILL_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore opens the backend selected by store.driver.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		return store.OpenRedis(cmd.Context(), store.RedisOptions{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
			Prefix:   cfg.Store.RedisPrefix,
		})
	case "", "sqlite":
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		return store.Open(dbPath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// newLogger logs to stderr for plain commands. The TUI owns the terminal,
// so interactive runs log to a file in the data directory instead.
func newLogger(cfg *config.Config, interactive bool) (*logger.Logger, error) {
	path := cfg.LogFile
	if path == "" && interactive {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "upskill.log")
	}
	if path == "" {
		return logger.New(cfg.Env)
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	return logger.NewFile(cfg.Env, path)
}

func newMailer(cfg *config.Config, log *logger.Logger) notify.Mailer {
	if cfg.Mail.Provider == "sendgrid" && cfg.Mail.SendGridAPIKey != "" {
		return notify.NewSendGridMailer(cfg.Mail.SendGridAPIKey, cfg.Mail.FromName, cfg.Mail.FromEmail)
	}
	return notify.NewConsoleMailer("upskill", log)
}

// newEnv loads configuration, opens the store, seeds the catalog and wires
// the services.
func newEnv(cmd *cobra.Command, interactive bool) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg, interactive)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	st, err := openStore(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	seeded, err := catalog.Seed(ctx, st.CourseRepo())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	if seeded {
		log.Info("seeded course catalog", "courses", len(catalog.Courses()))
	}

	e := &env{cfg: cfg, log: log, store: st, seeded: seeded}

	var opts []notify.Option
	if cfg.Desktop {
		if ns := notify.NewNotifySend(); ns != nil {
			opts = append(opts, notify.WithDesktop(ns))
		}
	}
	e.notify = notify.New(st.EmailRepo(), newMailer(cfg, log), log, opts...)

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		// Question generation falls back to the built-in bank.
		e.aiReason = err.Error()
		if errors.Is(err, llm.ErrNotConfigured) {
			log.Debug("llm provider not configured", "error", err)
		} else {
			log.Warn("llm provider unavailable", "error", err)
		}
		provider = nil
	}
	qcfg := questions.DefaultConfig()
	qcfg.MaxTokens = cfg.Questions.MaxTokens
	qcfg.Temperature = cfg.Questions.Temperature
	qcfg.RoleContextProbability = cfg.Questions.RoleContextProbability
	gen := questions.New(provider, qcfg, log, questions.WithSeed(cfg.Questions.Seed))

	e.users = users.New(st.UserRepo(), e.notify, log)
	e.learning = learning.New(st, e.notify, log)
	e.flow = assessment.NewFlow(st, gen, e.notify, log)
	e.groups = groups.New(st, log)
	e.dashboard = dashboard.New(st, e.learning)
	return e, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", "error", err)
	}
	e.log.Sync()
}

// currentUser loads the signed-in user from the saved session.
func (e *env) currentUser(ctx context.Context) (*store.User, error) {
	sess, err := config.LoadSession()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errNotSignedIn
	}
	u, err := e.users.Get(ctx, sess.UserID)
	if errors.Is(err, users.ErrNotFound) {
		return nil, errNotSignedIn
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// withEnv runs fn with a wired env and closes it afterwards.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := newEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(cmd.Context(), e)
}

// withUser is withEnv for commands that need a signed-in user.
func withUser(cmd *cobra.Command, fn func(ctx context.Context, e *env, u *store.User) error) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		u, err := e.currentUser(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, e, u)
	})
}
