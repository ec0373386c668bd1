package cli

import (
	"context"
	"fmt"

	"github.com/chadvoegele/s7/internal/cryptendpoint"
	"github.com/chadvoegele/s7/internal/endpoint"
	"github.com/chadvoegele/s7/internal/fsendpoint"
	"github.com/chadvoegele/s7/internal/logging"
	"github.com/chadvoegele/s7/internal/s3endpoint"
	"github.com/chadvoegele/s7/internal/secrets"
	"github.com/chadvoegele/s7/internal/synccrypto"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
	"github.com/chadvoegele/s7/internal/synturi"
)

// buildEndpoint constructs the endpoint named by rawURI, wiring in secrets
// and flags as the scheme and enc+ prefix require.
func buildEndpoint(ctx context.Context, rawURI string, sec secrets.Secrets, storageClass string, restoreReq s3endpoint.RestoreRequest, log *logging.Logger) (endpoint.Endpoint, error) {
	u, err := synturi.Parse(rawURI)
	if err != nil {
		return nil, synclibErrors.Wrap(synclibErrors.ErrUsage, "cli", err)
	}

	var inner endpoint.Endpoint
	switch u.Scheme {
	case synturi.File:
		inner = fsendpoint.New(u.Root)

	case synturi.S3:
		if sec.AccessKeyID == "" || sec.SecretAccessKey == "" {
			return nil, synclibErrors.Wrap(synclibErrors.ErrConfiguration, "cli",
				fmt.Errorf("%q: s3:// endpoints require accessKeyId and secretAccessKey in --secrets", rawURI))
		}
		backend, err := s3endpoint.New(ctx, s3endpoint.Config{
			AccessKeyID:     sec.AccessKeyID,
			SecretAccessKey: sec.SecretAccessKey,
			SessionToken:    sec.SessionToken,
			Region:          sec.Region,
			Bucket:          u.Bucket,
			Prefix:          u.Prefix,
			StorageClass:    storageClass,
			RestoreRequest:  restoreReq,
		})
		if err != nil {
			return nil, synclibErrors.Wrap(synclibErrors.ErrIO, "cli", fmt.Errorf("%q: %w", rawURI, err))
		}
		backend.SetLogger(log)
		inner = backend

	default:
		return nil, synclibErrors.Wrap(synclibErrors.ErrUsage, "cli", fmt.Errorf("%q: unsupported scheme", rawURI))
	}

	if !u.Encrypted {
		return inner, nil
	}

	if sec.Password == "" {
		return nil, synclibErrors.Wrap(synclibErrors.ErrConfiguration, "cli",
			fmt.Errorf("%q: enc+ endpoints require a password in --secrets", rawURI))
	}
	key, err := synccrypto.DeriveKey(sec.Password)
	if err != nil {
		return nil, synclibErrors.Wrap(synclibErrors.ErrConfiguration, "cli", fmt.Errorf("%q: %w", rawURI, err))
	}

	return cryptendpoint.New(inner, key), nil
}
