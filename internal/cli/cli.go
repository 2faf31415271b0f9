package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/tasknest/internal/app"
	"github.com/fastygo/tasknest/internal/config"
	"github.com/fastygo/tasknest/pkg/logger"
	"github.com/fastygo/tasknest/usecase"
	taskUC "github.com/fastygo/tasknest/usecase/task"
)

type globalFlags struct {
	backend  string
	boltPath string
	fileDir  string
	timezone string
	logLevel string
	json     bool
}

// session is opened lazily by the first subcommand that needs the store.
type session struct {
	app        *app.App
	dispatcher *usecase.Dispatcher
	loc        *time.Location
}

// CLI is the tasknest command tree bound to its output streams.
type CLI struct {
	root    *cobra.Command
	flags   globalFlags
	stdout  io.Writer
	stderr  io.Writer
	session *session
	opts    []taskUC.Option
}

// New builds the command tree. Store options are applied when the store is opened.
func New(stdout, stderr io.Writer, opts ...taskUC.Option) *CLI {
	c := &CLI{stdout: stdout, stderr: stderr, opts: opts}

	root := &cobra.Command{
		Use:           "tasknest",
		Short:         "Track personal tasks from the command line",
		Long:          `tasknest manages a local task list: add, update, complete and delete tasks, and see completion analytics for the last seven days.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.backend, "backend", "", "storage backend: bolt, file, redis or postgres (default from STORAGE_BACKEND)")
	pf.StringVar(&c.flags.boltPath, "bolt-path", "", "bolt database file (default from BOLTDB_PATH)")
	pf.StringVar(&c.flags.fileDir, "file-dir", "", "directory for the file backend (default from FILE_STORE_DIR)")
	pf.StringVar(&c.flags.timezone, "timezone", "", "IANA zone used for due dates and weekly progress")
	pf.StringVar(&c.flags.logLevel, "log-level", "warn", "log level written to stderr")
	pf.BoolVar(&c.flags.json, "json", false, "print results as JSON")

	root.AddCommand(
		c.addCmd(),
		c.listCmd(),
		c.showCmd(),
		c.updateCmd(),
		c.completeCmd(),
		c.deleteCmd(),
		c.statsCmd(),
		c.overdueCmd(),
	)
	c.root = root
	return c
}

// Execute runs args against the command tree and closes the store afterwards.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	c.root.SetArgs(args)
	err := c.root.ExecuteContext(ctx)
	if c.session != nil {
		if closeErr := c.session.app.Shutdown(ctx); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		c.session = nil
	}
	return err
}

func (c *CLI) open(cmd *cobra.Command) error {
	if c.session != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.flags.backend != "" {
		cfg.Storage.Backend = c.flags.backend
	}
	if c.flags.boltPath != "" {
		cfg.Storage.BoltPath = c.flags.boltPath
	}
	if c.flags.fileDir != "" {
		cfg.Storage.FileDir = c.flags.fileDir
	}
	if c.flags.timezone != "" {
		cfg.Tasks.TimeZone = c.flags.timezone
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    c.flags.logLevel,
		Encoding: "console",
		Output:   "stderr",
	})
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg, zapLogger, c.opts...)
	if err != nil {
		return err
	}
	zapLogger.Debug("store opened", zap.String("backend", cfg.Storage.Backend))

	d := usecase.NewDispatcher()
	taskUC.Register(d, a.Store)
	zapLogger.Debug("dispatcher ready", zap.Strings("handlers", d.Names()))
	c.session = &session{app: a, dispatcher: d, loc: loc}
	return nil
}

func (c *CLI) command(ctx context.Context, name string, payload interface{}) (interface{}, error) {
	out, err := c.session.dispatcher.ExecuteCommand(ctx, name, payload)
	c.printNotifications()
	return out, err
}

func (c *CLI) query(ctx context.Context, name string, params interface{}) (interface{}, error) {
	return c.session.dispatcher.ExecuteQuery(ctx, name, params)
}
