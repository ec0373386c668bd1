package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chadvoegele/s7/internal/s3endpoint"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
	"github.com/chadvoegele/s7/internal/syncrunner"
)

func newRestoreCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <target-uri>",
		Short: "Request archive-tier retrieval for every object in a target endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if state.secretsPath == "" {
				return synclibErrors.Wrap(synclibErrors.ErrUsage, "cli", fmt.Errorf("restore requires --secrets"))
			}
			sec, err := loadSecrets(state.secretsPath)
			if err != nil {
				return err
			}

			restoreReq, err := parseRestoreRequest(state.restoreReqJSON)
			if err != nil {
				return err
			}

			target, err := buildEndpoint(ctx, args[0], sec, state.storageClass, restoreReq, state.log)
			if err != nil {
				return err
			}

			summary, err := syncrunner.Restore(ctx, target, state.log)
			if err != nil {
				return err
			}

			fmt.Printf("requested=%d already_ongoing=%d already_available=%d\n",
				summary.Requested, summary.AlreadyOngoing, summary.AlreadyAvailable)
			return nil
		},
	}
}

// parseRestoreRequest decodes --restore-request, falling back to the
// default restore document when the flag is absent.
func parseRestoreRequest(raw string) (s3endpoint.RestoreRequest, error) {
	if raw == "" {
		return s3endpoint.DefaultRestoreRequest(), nil
	}

	var req s3endpoint.RestoreRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return s3endpoint.RestoreRequest{}, synclibErrors.Wrap(synclibErrors.ErrUsage, "cli",
			fmt.Errorf("--restore-request: invalid JSON: %w", err))
	}
	return req, nil
}
