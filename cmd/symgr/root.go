package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/symgr/internal/version"
	"github.com/arthur-debert/symgr/pkg/backup"
	"github.com/arthur-debert/symgr/pkg/commands/status"
	"github.com/arthur-debert/symgr/pkg/config"
	"github.com/arthur-debert/symgr/pkg/dispatcher"
	"github.com/arthur-debert/symgr/pkg/ignore"
	"github.com/arthur-debert/symgr/pkg/logging"
	"github.com/arthur-debert/symgr/pkg/output"
)

var (
	verbosity int
	blessFlag bool
	dryRun    bool
)

// NewRootCmd builds the symgr command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "symgr <from> <to>",
		Short: "A symlink manager for tracked configuration files",
		Long: `symgr reconciles a repository tree of tracked files with a live
directory by creating symlinks, and can "bless" a live file into the
tree: copy its content in and leave a symlink in its place.

The operation is inferred from the two paths:
  file      + directory  bless <from> into <to>
  directory + directory  mirror the tree <to> into <from>
  file      + file       make <from> a symlink to <to>`,
		Args: cobra.ExactArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			opts := dispatcher.Options{
				From:        args[0],
				To:          args[1],
				Bless:       blessFlag,
				DryRun:      dryRun,
				SystemFiles: cfg.AllSystemFiles(),
			}
			if !cfg.IgnoreCheck {
				opts.Oracle = ignore.None
			}
			if cfg.BackupCommand != "" {
				opts.Saver = backup.NewCommand(cfg.BackupCommand)
			}

			result, err := dispatcher.Dispatch(opts)
			if err != nil {
				return err
			}

			r := output.NewRenderer(cmd.OutOrStdout(), dryRun)
			switch result.Command {
			case dispatcher.CommandLinkOne:
				r.RenderLink(result.Link)
			case dispatcher.CommandLinkTree:
				r.RenderTree(result.Tree)
			case dispatcher.CommandBless:
				r.RenderBless(result.Bless)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().BoolVarP(&blessFlag, "bless", "b", false, "Bless <from> into the directory <to>: copy it there and link back to it")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview changes without executing them")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <live> <tree>",
		Short: "Report how a live directory relates to a repository tree",
		Long: `Walks the repository tree and reports, for each tracked file, whether
its mirror in the live directory is a correct symlink, points somewhere
else, is missing, or is blocked by an existing file or directory.
Makes no changes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			opts := status.StatusOptions{
				LiveDir:     args[0],
				TreeDir:     args[1],
				SystemFiles: cfg.AllSystemFiles(),
			}
			if !cfg.IgnoreCheck {
				opts.Oracle = ignore.None
			}

			result, err := status.Status(opts)
			if err != nil {
				return err
			}

			output.NewRenderer(cmd.OutOrStdout(), false).RenderStatus(result)
			return nil
		},
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("symgr version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

func exitOnError(err error) {
	if err != nil {
		output.NewRenderer(os.Stderr, false).RenderError(err)
		os.Exit(1)
	}
}
