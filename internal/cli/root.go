// Package cli wires the sync and restore subcommands, flag parsing, and
// signal-aware context lifecycle for the command line tool.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chadvoegele/s7/internal/logging"
)

// rootState carries the flags and derived state shared by the
// subcommands, set up in PersistentPreRun.
type rootState struct {
	log          *logging.Logger
	secretsPath  string
	storageClass string
	restoreReqJSON string
}

// NewRootCmd builds the top-level command tree.
func NewRootCmd() *cobra.Command {
	state := &rootState{}

	root := &cobra.Command{
		Use:           "s7",
		Short:         "Encrypted, size/mtime-based file sync across filesystem and object-store endpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			state.log = logging.NewCLILogger()
		},
	}

	root.PersistentFlags().StringVar(&state.secretsPath, "secrets", "", "path to a JSON file with credentials and the encryption password")
	root.PersistentFlags().StringVar(&state.storageClass, "storage-class", "", "object-store storage class on writes (default DEEP_ARCHIVE)")
	root.PersistentFlags().StringVar(&state.restoreReqJSON, "restore-request", "", "JSON document passed as the restore request body")

	root.AddCommand(newSyncCmd(state))
	root.AddCommand(newRestoreCmd(state))

	return root
}

// Execute runs the command tree under a context canceled on SIGINT/SIGTERM,
// and returns the process exit code: 0 on success, 1 on any failure.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := validateFlagForm(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
