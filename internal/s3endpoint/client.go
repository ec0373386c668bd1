package s3endpoint

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/chadvoegele/s7/internal/constants"
	"github.com/chadvoegele/s7/internal/logging"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// RestoreRequest is the document sent with an archive-retrieval request.
// It mirrors the shape of an S3 RestoreObject Glacier job parameters body,
// and is what --restore-request overrides as raw JSON.
type RestoreRequest struct {
	Days                 int32 `json:"Days"`
	GlacierJobParameters struct {
		Tier string `json:"Tier"`
	} `json:"GlacierJobParameters"`
}

// DefaultRestoreRequest matches the default restore-request document: a
// five-day Bulk-tier Glacier retrieval, used whenever --restore-request is
// not given.
func DefaultRestoreRequest() RestoreRequest {
	r := RestoreRequest{Days: 5}
	r.GlacierJobParameters.Tier = "Bulk"
	return r
}

// Config describes an object-store endpoint's construction parameters.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
	Bucket          string
	Prefix          string
	StorageClass    string
	RestoreRequest  RestoreRequest
}

// Backend is an object-store-backed endpoint.Endpoint, implementing
// restore and head as well.
type Backend struct {
	client *s3.Client
	cfg    Config
	logger *logging.Logger
}

// New constructs a Backend from explicit credentials and region, rather
// than relying on the ambient credential chain, since the --secrets file is
// this tool's sole source of truth for object-store access.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	if cfg.StorageClass == "" {
		cfg.StorageClass = constants.DefaultStorageClass
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		category := synclibErrors.ErrIO
		if synclibErrors.IsCredentialError(err) {
			category = synclibErrors.ErrConfiguration
		}
		return nil, synclibErrors.Wrap(category, "s3endpoint", fmt.Errorf("load aws config: %w", err))
	}

	return &Backend{
		client: s3.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

func (b *Backend) key(path string) string {
	if b.cfg.Prefix == "" {
		return path
	}
	return strings.TrimSuffix(b.cfg.Prefix, "/") + "/" + path
}

func (b *Backend) ToString() string {
	if b.cfg.Prefix == "" {
		return fmt.Sprintf("s3://%s", b.cfg.Bucket)
	}
	return fmt.Sprintf("s3://%s/%s", b.cfg.Bucket, b.cfg.Prefix)
}
