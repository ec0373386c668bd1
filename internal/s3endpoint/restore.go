package s3endpoint

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/chadvoegele/s7/internal/endpoint"
)

var archivalStorageClasses = map[types.StorageClass]bool{
	types.StorageClassGlacier:       true,
	types.StorageClassDeepArchive:   true,
}

// Head reports an entry's restore status by reading the StorageClass and
// Restore header fields from a HeadObject call.
//
// The Restore field, when present, is an RFC 2616-style parameter list such
// as `ongoing-request="true"` or `ongoing-request="false",
// expiry-date="Fri, 23 Dec 2012 00:00:00 GMT"`. Its absence means no
// restore has ever been requested for this object.
func (b *Backend) Head(ctx context.Context, path string) (endpoint.RestoreStatus, error) {
	out, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(b.key(path)),
	})
	if err != nil {
		return endpoint.RestoreStatus{}, classify(fmt.Errorf("head %s: %w", path, err))
	}

	status := endpoint.RestoreStatus{
		Archived: archivalStorageClasses[out.StorageClass],
	}

	if out.Restore == nil {
		return status, nil
	}

	ongoing, hasExpiry := parseRestoreHeader(*out.Restore)
	status.Ongoing = ongoing
	status.Available = !ongoing && hasExpiry

	return status, nil
}

// parseRestoreHeader extracts ongoing-request and whether an expiry-date
// parameter is present from an x-amz-restore-style header value.
func parseRestoreHeader(header string) (ongoing bool, hasExpiry bool) {
	for _, field := range strings.Split(header, ",") {
		field = strings.TrimSpace(field)
		switch {
		case strings.HasPrefix(field, "ongoing-request="):
			val := strings.Trim(strings.TrimPrefix(field, "ongoing-request="), `"`)
			ongoing = val == "true"
		case strings.HasPrefix(field, "expiry-date="):
			hasExpiry = true
		}
	}
	return ongoing, hasExpiry
}

// Restore issues an archive retrieval request. Calling it on an entry that
// is not archived, or that already has an ongoing or completed restore, is
// a no-op: the caller is expected to have checked Head first, but Restore
// re-checks to stay safe against repeated/idempotent invocations.
func (b *Backend) Restore(ctx context.Context, path string) error {
	status, err := b.Head(ctx, path)
	if err != nil {
		return err
	}
	if !status.Archived || status.Ongoing || status.Available {
		return nil
	}

	req := types.RestoreRequest{
		Days: aws.Int32(b.cfg.RestoreRequest.Days),
		GlacierJobParameters: &types.GlacierJobParameters{
			Tier: types.Tier(b.cfg.RestoreRequest.GlacierJobParameters.Tier),
		},
	}

	_, err = b.client.RestoreObject(ctx, &s3.RestoreObjectInput{
		Bucket:         aws.String(b.cfg.Bucket),
		Key:            aws.String(b.key(path)),
		RestoreRequest: &req,
	})
	if err != nil {
		return classify(fmt.Errorf("restore %s: %w", path, err))
	}
	return nil
}
