package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storefront/pkg/storefront"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize storefront configuration and storage",
		Long: "Create the configuration directory with a default config.yaml, create the\n" +
			"data directory, and open the configured backend once.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	if err := ensureDir(a.resolvedConfigDir); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	written, err := writeConfigIfMissing(a.resolvedConfigDir, a.dataDir)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := ensureDir(dataDir); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	err = a.withSession(cmd.Context(), func(s *storefront.Session) error {
		return nil
	})
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"config_dir":     a.resolvedConfigDir,
			"data_dir":       dataDir,
			"config_written": written,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "storefront initialized")
	fmt.Fprintln(out, "  config:", a.resolvedConfigDir)
	fmt.Fprintln(out, "  data:  ", dataDir)
	return nil
}
