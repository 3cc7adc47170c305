// Package cli implements the storefront command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storefront/internal/logger"
	"github.com/mesh-intelligence/storefront/internal/paths"
	"github.com/mesh-intelligence/storefront/pkg/types"
)

// Exit codes.
const (
	ExitSuccess   = 0
	ExitUserError = 1
	ExitSysError  = 2
)

// app holds global flag values and the configuration loaded before each
// command runs.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	envFile   string

	resolvedConfigDir string
	cfg               types.Config
	logCfg            logger.Config
}

// NewRootCmd creates the top-level "storefront" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Multi-tenant business records and shopping cart",
		Long: "storefront keeps the clients, products, quotes, sales, suppliers, purchases,\n" +
			"orders, users, documents, and cart of several companies, one active at a time.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: ./"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before resolving directories")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newTenantCmd(a))
	root.AddCommand(newRecordCmd(a))
	root.AddCommand(newCartCmd(a))

	return root
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "storefront:", err)
		return exitCode(err)
	}
	return ExitSuccess
}

// exitCode maps lookup and input errors to ExitUserError and everything
// else to ExitSysError.
func exitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage),
		errors.Is(err, types.ErrTenantNotFound),
		errors.Is(err, types.ErrRecordNotFound),
		errors.Is(err, types.ErrUnknownEntityType),
		errors.Is(err, types.ErrInvalidID):
		return ExitUserError
	default:
		return ExitSysError
	}
}

// usageError reports malformed command input.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// setup loads the dotenv file, resolves the config directory, and reads
// config.yaml. The version command needs none of it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.envFile, err)
		}
	}

	dir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.resolvedConfigDir = dir

	cfg, logCfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logCfg = logCfg
	return nil
}

// resolveDataDir applies flag > config.yaml > STOREFRONT_DATA_DIR > default.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, a.cfg.DataDir)
}

// ensureDir creates dir if needed.
func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
