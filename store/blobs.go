package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Yulian302/findit-gateway/common/config"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/metrics"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type BlobStore interface {
	listing.BlobStore
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

type S3BlobStore struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
	presignTTL    time.Duration
}

func NewS3BlobStore(client *s3.Client, cfg config.S3Config) *S3BlobStore {
	return &S3BlobStore{
		client:        client,
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		presignTTL:    cfg.PresignTTL,
	}
}

func (s *S3BlobStore) IsReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	return err
}

func (s *S3BlobStore) Name() string {
	return "BlobStore[" + s.bucket + "]"
}

// ListChildren lists one level below ref using "/" as the delimiter.
func (s *S3BlobStore) ListChildren(ctx context.Context, ref listing.Ref) (*listing.Listing, error) {
	start := time.Now()
	prefix := string(ref)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	out := &listing.Listing{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			metrics.RecordS3Operation("list_objects", time.Since(start), false)
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		appendPage(out, prefix, page.CommonPrefixes, page.Contents)
	}

	metrics.RecordS3Operation("list_objects", time.Since(start), true)
	return out, nil
}

func appendPage(out *listing.Listing, prefix string, prefixes []s3types.CommonPrefix, contents []s3types.Object) {
	for _, cp := range prefixes {
		p := aws.ToString(cp.Prefix)
		name := strings.TrimSuffix(strings.TrimPrefix(p, prefix), "/")
		if name == "" {
			continue
		}
		out.Folders = append(out.Folders, listing.Entry{
			Identifier: name,
			Kind:       listing.KindFolder,
			Ref:        listing.Ref(p),
		})
	}
	for _, obj := range contents {
		key := aws.ToString(obj.Key)
		name := strings.TrimPrefix(key, prefix)
		// zero-byte folder markers created by consoles
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		out.Files = append(out.Files, listing.Entry{
			Identifier: name,
			Kind:       listing.KindFile,
			Ref:        listing.Ref(key),
		})
	}
}

func (s *S3BlobStore) ResolveDownloadAddress(ctx context.Context, ref listing.Ref) (string, error) {
	key := string(ref)
	if key == "" {
		return "", errors.New("empty object key")
	}
	if s.publicBaseURL != "" {
		return publicURL(s.publicBaseURL, key), nil
	}

	start := time.Now()
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		metrics.RecordS3Operation("presign_get", time.Since(start), false)
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	metrics.RecordS3Operation("presign_get", time.Since(start), true)
	return req.URL, nil
}

func publicURL(base, key string) string {
	return base + "/" + (&url.URL{Path: key}).EscapedPath()
}

func (s *S3BlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	start := time.Now()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		metrics.RecordS3Operation("put_object", time.Since(start), false)
		return fmt.Errorf("put object %s: %w", key, err)
	}

	metrics.RecordS3Operation("put_object", time.Since(start), true)
	return nil
}
