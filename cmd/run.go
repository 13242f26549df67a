package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/analytics"
	"github.com/abhisek/mathcamp/internal/app"
	"github.com/abhisek/mathcamp/internal/config"
	"github.com/abhisek/mathcamp/internal/logger"
	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/progress"
	"github.com/abhisek/mathcamp/internal/screens"
	"github.com/abhisek/mathcamp/internal/session"
	"github.com/abhisek/mathcamp/internal/store"
)

// loadConfig reads .env, then the config file named by --config.
func loadConfig(cmd *cobra.Command) (*config.Loader, *config.Config, error) {
	if err := config.LoadEnv(".env"); err != nil {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}
	path, _ := cmd.Flags().GetString("config")
	loader := config.NewLoader(path)
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return loader, cfg, nil
}

// runtime is the wired set of services behind every command.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *store.Store
	tracker   *progress.Tracker
	generator *problemgen.Generator
	planner   *session.DefaultPlanner
	flags     *analytics.Flags
	analytics analytics.Tracker

	closers []func() error
}

type runtimeOptions struct {
	// logToFile sends logs to the log file instead of stderr. The TUI
	// owns the terminal.
	logToFile bool

	// withStore opens the database. Without it progress lives in memory.
	withStore bool
}

func openRuntime(cmd *cobra.Command, cfg *config.Config, opts runtimeOptions) (*runtime, error) {
	rt := &runtime{cfg: cfg}
	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr}

	var dbPath string
	if opts.withStore || opts.logToFile {
		flag, _ := cmd.Flags().GetString("db")
		p, err := cfg.ResolveDBPath(flag)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	}

	if opts.logToFile {
		l, closeLog, err := logger.OpenFile(logCfg, cfg.LogPath(dbPath))
		if err != nil {
			return nil, err
		}
		rt.logger = l
		rt.closers = append(rt.closers, closeLog)
	} else {
		l, err := logger.New(logCfg)
		if err != nil {
			return nil, err
		}
		rt.logger = l
	}

	ctx := cmd.Context()
	trackerOpts := []progress.Option{progress.WithLogger(rt.logger)}
	sink := analytics.Sink(&analytics.MemorySink{})
	if opts.withStore {
		st, err := store.Open(dbPath, rt.logger)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.store = st
		rt.closers = append(rt.closers, st.Close)
		trackerOpts = append(trackerOpts, progress.WithRepo(st.ProgressRepo()))
		sink = analytics.NewStoreSink(st.AnalyticsRepo())
	}

	tracker, err := progress.NewTracker(ctx, trackerOpts...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load progress: %w", err)
	}
	rt.tracker = tracker

	genCfg := problemgen.DefaultConfig()
	genCfg.Logger = rt.logger
	gen, err := problemgen.New(genCfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.generator = gen
	rt.planner = session.NewPlanner(nil, gen.Catalog(), rt.logger)
	rt.flags = analytics.NewFlags(cfg.Flags)
	rt.analytics = analytics.WithLogging(analytics.NewClient(sink, rt.logger), rt.logger)
	return rt, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

func (rt *runtime) orchestrator(sc session.Config) *session.Orchestrator {
	return session.NewOrchestrator(sc, session.Deps{
		Planner:   rt.planner,
		Generator: rt.generator,
		Progress:  rt.tracker,
		Analytics: rt.analytics,
		Flags:     rt.flags,
		Logger:    rt.logger,
	})
}

func (rt *runtime) sessionConfig() session.Config {
	return session.Config{Difficulty: rt.cfg.Difficulty, ProblemCount: rt.cfg.ProblemCount}
}

// runApp launches the TUI, optionally straight into activity.
func runApp(cmd *cobra.Command, activity problemgen.ProblemType) error {
	return runAppWith(cmd, activity, nil)
}

func runAppWith(cmd *cobra.Command, activity problemgen.ProblemType, override func(*config.Config)) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	rt, err := openRuntime(cmd, cfg, runtimeOptions{logToFile: true, withStore: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	skipSplash, _ := cmd.Flags().GetBool("no-splash")
	env := &screens.Env{
		Orchestrator: rt.orchestrator(rt.sessionConfig()),
		Progress:     rt.tracker,
		Flags:        rt.flags,
		Logger:       rt.logger,
	}
	rt.logger.Info("starting",
		zap.String("difficulty", string(cfg.Difficulty)),
		zap.Int("problem_count", cfg.ProblemCount))

	return app.Run(cmd.Context(), app.Options{
		Env:         env,
		Analytics:   rt.analytics,
		Activity:    activity,
		SkipWelcome: skipSplash,
	})
}
