package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chadvoegele/s7/internal/s3endpoint"
	"github.com/chadvoegele/s7/internal/secrets"
	"github.com/chadvoegele/s7/internal/syncrunner"
)

func newSyncCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <source-uri> <target-uri>",
		Short: "Sync a source endpoint to a target endpoint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sec, err := loadSecrets(state.secretsPath)
			if err != nil {
				return err
			}

			restoreReq := s3endpoint.DefaultRestoreRequest()

			source, err := buildEndpoint(ctx, args[0], sec, state.storageClass, restoreReq, state.log)
			if err != nil {
				return err
			}
			target, err := buildEndpoint(ctx, args[1], sec, state.storageClass, restoreReq, state.log)
			if err != nil {
				return err
			}

			summary, err := syncrunner.Sync(ctx, source, target, state.log)
			if err != nil {
				return err
			}

			fmt.Printf("added=%d updated=%d deleted=%d skipped=%d\n",
				summary.Added, summary.Updated, summary.Deleted, summary.Skipped)
			return nil
		},
	}
}

// loadSecrets reads the secrets file if one was given. A sync against two
// plain file:// endpoints needs no secrets at all, so an empty path is not
// an error here; buildEndpoint rejects missing fields for schemes that
// actually need them.
func loadSecrets(path string) (secrets.Secrets, error) {
	if path == "" {
		return secrets.Secrets{}, nil
	}
	return secrets.Load(path)
}
