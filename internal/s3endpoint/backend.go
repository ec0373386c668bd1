package s3endpoint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/chadvoegele/s7/internal/constants"
	"github.com/chadvoegele/s7/internal/endpoint"
	"github.com/chadvoegele/s7/internal/logging"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// classify wraps an S3 client error as a configuration error when it looks
// like a credential problem, or as a plain I/O error otherwise, so a
// caller further up the chain can tell an expired token from a transient
// failure without sniffing AWS error strings itself.
func classify(err error) error {
	if synclibErrors.IsCredentialError(err) {
		return synclibErrors.Wrap(synclibErrors.ErrConfiguration, "s3endpoint", err)
	}
	return synclibErrors.Wrap(synclibErrors.ErrIO, "s3endpoint", err)
}

// logAdapter lets the multipart part-sizing algorithm log through the
// caller's structured logger without the constants/multipart code needing
// to import zerolog directly.
type logAdapter struct{ l *logging.Logger }

func (a logAdapter) Noticef(format string, args ...any) {
	if a.l == nil {
		return
	}
	a.l.Info().Msgf(format, args...)
}

// SetLogger attaches a logger used for part-size adjustment notices.
func (b *Backend) SetLogger(l *logging.Logger) {
	b.logger = l
}

func (b *Backend) List(ctx context.Context) ([]endpoint.Entry, error) {
	var entries []endpoint.Entry

	prefix := b.cfg.Prefix
	if prefix != "" {
		prefix = strings.TrimSuffix(prefix, "/") + "/"
	}

	paginator := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.cfg.Bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classify(fmt.Errorf("list %s: %w", b.ToString(), err))
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			rel := strings.TrimPrefix(key, prefix)
			if rel == "" {
				continue
			}
			var mtimeMs int64
			if obj.LastModified != nil {
				mtimeMs = obj.LastModified.UnixMilli()
			}
			entries = append(entries, endpoint.Entry{
				Path:    rel,
				Size:    aws.ToInt64(obj.Size),
				MtimeMs: mtimeMs,
			})
		}
	}

	return entries, nil
}

func (b *Backend) Size(ctx context.Context, path string) (int64, error) {
	out, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(b.key(path)),
	})
	if err != nil {
		return 0, classify(fmt.Errorf("size %s: %w", path, err))
	}
	return aws.ToInt64(out.ContentLength), nil
}

func (b *Backend) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(b.key(path)),
	})
	if err != nil {
		return nil, classify(fmt.Errorf("read %s: %w", path, err))
	}
	return out.Body, nil
}

// Write performs a managed multipart upload: the part size is chosen by
// choosePartSize, and parts are uploaded sequentially, since this tool
// never runs more than one transfer at a time.
func (b *Backend) Write(ctx context.Context, path string, size int64, r io.Reader) error {
	key := b.key(path)
	partSize := choosePartSize(size, logAdapter{b.logger})

	create, err := b.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:       aws.String(b.cfg.Bucket),
		Key:          aws.String(key),
		StorageClass: types.StorageClass(b.cfg.StorageClass),
	})
	if err != nil {
		return classify(fmt.Errorf("create multipart upload %s: %w", path, err))
	}
	uploadID := create.UploadId

	var completed []types.CompletedPart
	partNum := int32(1)
	buf := make([]byte, partSize)

	abort := func() {
		_, _ = b.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
			Bucket:   aws.String(b.cfg.Bucket),
			Key:      aws.String(key),
			UploadId: uploadID,
		})
	}

	for {
		n, readErr := io.ReadFull(r, buf)
		if n > 0 {
			part, err := b.client.UploadPart(ctx, &s3.UploadPartInput{
				Bucket:     aws.String(b.cfg.Bucket),
				Key:        aws.String(key),
				UploadId:   uploadID,
				PartNumber: aws.Int32(partNum),
				Body:       bytes.NewReader(buf[:n]),
			})
			if err != nil {
				abort()
				return classify(fmt.Errorf("upload part %d of %s: %w", partNum, path, err))
			}
			completed = append(completed, types.CompletedPart{
				ETag:       part.ETag,
				PartNumber: aws.Int32(partNum),
			})
			partNum++
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			abort()
			return classify(fmt.Errorf("read body for %s: %w", path, readErr))
		}
	}

	if len(completed) == 0 {
		// Zero-byte object: still needs at least one (empty) part.
		part, err := b.client.UploadPart(ctx, &s3.UploadPartInput{
			Bucket:     aws.String(b.cfg.Bucket),
			Key:        aws.String(key),
			UploadId:   uploadID,
			PartNumber: aws.Int32(1),
			Body:       bytes.NewReader(nil),
		})
		if err != nil {
			abort()
			return classify(fmt.Errorf("upload empty part for %s: %w", path, err))
		}
		completed = append(completed, types.CompletedPart{ETag: part.ETag, PartNumber: aws.Int32(1)})
	}

	_, err = b.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(b.cfg.Bucket),
		Key:             aws.String(key),
		UploadId:        uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		abort()
		return classify(fmt.Errorf("complete multipart upload %s: %w", path, err))
	}

	return nil
}

func (b *Backend) Remove(ctx context.Context, path string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(b.key(path)),
	})
	if err != nil {
		return classify(fmt.Errorf("remove %s: %w", path, err))
	}
	return nil
}

// IsWriteSupported reports whether size fits S3's absolute object-size
// ceiling. choosePartSize is always able to fit any size up to that ceiling
// under the 10,000-part limit.
func (b *Backend) IsWriteSupported(size int64) bool {
	return size >= 0 && size <= constants.MaxObjectSize
}
