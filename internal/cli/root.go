// Package cli builds the mergerfs-consolidate command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/magma1447/mergerfs-tools/internal/version"
	"github.com/magma1447/mergerfs-tools/pkg/config"
	"github.com/magma1447/mergerfs-tools/pkg/consolidate"
	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/executor"
	"github.com/magma1447/mergerfs-tools/pkg/logging"
	"github.com/magma1447/mergerfs-tools/pkg/paths"
	"github.com/magma1447/mergerfs-tools/pkg/ui"
	"github.com/magma1447/mergerfs-tools/pkg/ui/output/styles"
	"github.com/magma1447/mergerfs-tools/pkg/xattr"
)

// deps are the host services a run uses; tests replace them
type deps struct {
	fs     afero.Fs
	attrs  xattr.Getter
	runner executor.Runner
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(deps{})
}

func newRootCmd(d deps) *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity   int
		execute     bool
		configFile  string
		printConfig bool
		color       string
	)

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			loadUserStyles()
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !printConfig {
				return cmd.Help()
			}

			cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile})
			if err != nil {
				return err
			}

			if printConfig {
				out, err := cfg.TOML()
				if err != nil {
					return err
				}
				if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
					return errors.Wrap(err, errors.ErrOutput, "failed to write configuration")
				}
				return nil
			}

			format, err := ui.ParseFormat(color)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --color value")
			}

			c := consolidate.New(consolidate.Options{
				Config:  cfg,
				Execute: execute,
				Verbose: verbosity > 0,
				Out:     cmd.OutOrStdout(),
				Format:  format,
				FS:      d.fs,
				Attrs:   d.attrs,
				Runner:  d.runner,
			})

			summary, err := c.Run(cmd.Context(), args)
			log.Info().Msgf(MsgRunSummary,
				summary.Processed, summary.Skipped, summary.AlreadyConsolidated,
				summary.Consolidated, summary.FailedOperations, summary.Operations)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.Flags()
	flags.CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&execute, "execute", "e", false, MsgFlagExecute)
	flags.StringVar(&configFile, "config", "", MsgFlagConfig)
	flags.BoolVar(&printConfig, "print-config", false, MsgFlagPrintConfig)
	flags.StringVar(&color, "color", "auto", MsgFlagColor)

	_ = rootCmd.MarkFlagFilename("config", "toml")
	_ = rootCmd.RegisterFlagCompletionFunc("color", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("mergerfs-consolidate %s\n", version.String()))
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	return rootCmd
}

// loadUserStyles replaces the built-in styles with the user's styles.yaml
// when one exists.
func loadUserStyles() {
	path := paths.StylesFilePath()
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := styles.LoadStyles(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Ignoring user styles")
	}
}
