package cli

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/paths"
	"github.com/mesh-intelligence/addressbook/internal/shell"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func newShellCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive assistant",
		Long: `Start the interactive assistant. Contacts live in memory until the
assistant exits.

Commands:
  hello
  add <name> [phone]
  change <name> <old-phone> <new-phone>
  phone <name>
  find-phone <name> <phone>
  remove-phone <name> <phone>
  delete <name>
  show <name>
  all [--json]
  exit | close`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, f)
		},
	}
}

func runShell(cmd *cobra.Command, f *rootFlags) error {
	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return resolveErr(err)
	}

	cfg, err := loadConfig(configDir, f)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "starting assistant", "config_dir", configDir, "output", cfg.Output)

	sh := shell.New(types.NewAddressBook(), cfg, logger)
	if err := sh.Run(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		level.Error(logger).Log("msg", "assistant stopped", "err", err)
		return sysError(err)
	}
	return nil
}

// newLogger returns a logfmt logger on w that drops entries below lvl.
func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	allow, err := shell.LevelFilter(lvl)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, allow), nil
}
