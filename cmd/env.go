package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/auth"
	"github.com/abhisek/memty/internal/blanks"
	"github.com/abhisek/memty/internal/config"
	"github.com/abhisek/memty/internal/extract"
	"github.com/abhisek/memty/internal/gamification"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/llm"
	"github.com/abhisek/memty/internal/logger"
	"github.com/abhisek/memty/internal/pipeline"
	"github.com/abhisek/memty/internal/quizgen"
	"github.com/abhisek/memty/internal/store"
	"github.com/abhisek/memty/internal/study"
	"github.com/abhisek/memty/internal/ui/theme"
)

// env holds the dependencies a command runs against.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store
	kv    store.KV
	ns    *store.Namespace
	auth  *auth.LocalProvider

	closers []func() error
}

// openEnv loads configuration and opens the store and key-value backend.
func openEnv(cmd *cobra.Command) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: configFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: st, kv: st.KV()}
	e.closers = append(e.closers, st.Close)

	if cfg.Store.Backend == config.BackendRedis {
		rkv, err := store.OpenRedis(cmd.Context(), cfg.Store.RedisURL)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open redis: %w", err)
		}
		e.kv = rkv
		e.closers = append(e.closers, rkv.Close)
	}

	e.ns = store.NewNamespace(e.kv, cfg.Store.Prefix)
	e.auth = auth.NewLocalProvider(e.ns, auth.Profile{Name: cfg.Profile.Name, Email: cfg.Profile.Email})
	log.Debug("environment ready", "db", dbPath, "kv", cfg.Store.Backend)
	return e, nil
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.log.Warn("close", "error", err)
		}
	}
	e.log.Sync()
}

// user returns the signed-in user.
func (e *env) user(ctx context.Context) (*auth.User, error) {
	u, err := e.auth.Current(ctx)
	if errors.Is(err, auth.ErrSignedOut) {
		return nil, errors.New("not signed in; run `memty signin` first")
	}
	return u, err
}

// userNamespace returns the namespace scoped to the signed-in user.
func (e *env) userNamespace(ctx context.Context) (*store.Namespace, error) {
	u, err := e.user(ctx)
	if err != nil {
		return nil, err
	}
	return e.ns.ForUser(u.ID), nil
}

// preferences returns the signed-in user's preferences, or the defaults
// when signed out or unreadable.
func (e *env) preferences(ctx context.Context) lesson.Preferences {
	prefs := lesson.DefaultPreferences()
	prefs.ChunkSize = e.cfg.ChunkSize()

	uns, err := e.userNamespace(ctx)
	if err != nil {
		return prefs
	}
	if _, err := uns.Get(ctx, store.KeyPreferences, &prefs); err != nil {
		e.log.Warn("read preferences", "error", err)
	}
	return prefs.Normalize()
}

func (e *env) styles(ctx context.Context) theme.Styles {
	return theme.New(e.preferences(ctx).Theme)
}

// engine builds the gamification engine for the signed-in user.
func (e *env) engine(ctx context.Context, notify func(gamification.Badge)) (*gamification.Engine, error) {
	u, err := e.user(ctx)
	if err != nil {
		return nil, err
	}
	return gamification.NewEngine(ctx, gamification.Config{
		UserID:      u.ID,
		Repository:  gamification.NewNamespaceRepository(e.ns.ForUser(u.ID)),
		Completions: e.store.CompletionRepo(),
		Notify:      notify,
		Logger:      e.log.With("user_id", u.ID),
	}), nil
}

// session builds a study session for the signed-in user.
func (e *env) session(ctx context.Context, notify func(gamification.Badge)) (*study.Session, error) {
	eng, err := e.engine(ctx, notify)
	if err != nil {
		return nil, err
	}
	return study.New(e.store.LessonRepo(), eng, e.log), nil
}

// synthesizer returns the configured question synthesizer.
func (e *env) synthesizer(ctx context.Context, name string) (quizgen.Synthesizer, error) {
	if name == "" {
		name = e.cfg.Quiz.Synthesizer
	}
	switch name {
	case config.SynthTemplate:
		return quizgen.NewTemplate(), nil
	case config.SynthLLM:
		if e.cfg.LLM.Provider == "" {
			return nil, errors.New("no LLM provider configured; set MEMTY_LLM_PROVIDER or a provider API key")
		}
		if err := e.cfg.LLM.Validate(); err != nil {
			return nil, err
		}
		provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.log)
		if err != nil {
			return nil, err
		}
		qcfg := quizgen.DefaultConfig()
		qcfg.Logger = e.log
		return quizgen.NewLLM(provider, qcfg), nil
	default:
		return nil, fmt.Errorf("unknown synthesizer %q", name)
	}
}

// assembler builds a lesson assembler from configuration.
func (e *env) assembler(ctx context.Context, synthName string, progress pipeline.ProgressFunc) (*pipeline.Assembler, error) {
	synth, err := e.synthesizer(ctx, synthName)
	if err != nil {
		return nil, err
	}

	policy := blanks.PolicyByName(e.cfg.Lesson.BlankPolicy, e.cfg.Lesson.BlankSeed)
	return pipeline.NewAssembler(extract.New(), blanks.NewSelector(policy), synth, pipeline.Config{
		Concurrency: e.cfg.Lesson.SynthConcurrency,
		Progress:    progress,
		Logger:      e.log,
	}), nil
}

// withEnv runs fn with an opened env and closes it afterwards.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(cmd.Context(), e)
}
