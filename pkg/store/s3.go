package store

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 is a store that reads the assets from a bucket of a S3 compatible
// object storage.
type S3 struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3 returns a store for the objects of bucket, under prefix.
func NewS3(bucket, prefix string, opts S3Options) (*S3, error) {
	if bucket == "" {
		return nil, errors.New("store: missing S3 bucket")
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	return &S3{client: client, bucket: bucket, prefix: prefix}, nil
}

// Fetch implements the Store interface.
func (s *S3) Fetch(ctx context.Context, name string) ([]byte, error) {
	name, err := clean(name)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(s.prefix, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapS3Err(err)
	}
	defer obj.Close()
	data, err := io.ReadAll(io.LimitReader(obj, maxAssetSize))
	if err != nil {
		return nil, wrapS3Err(err)
	}
	return data, nil
}

// CheckStatus implements the Store interface.
func (s *S3) CheckStatus(ctx context.Context) (time.Duration, error) {
	before := time.Now()
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("store: S3 bucket does not exist")
	}
	return time.Since(before), nil
}

// Kind implements the Store interface.
func (s *S3) Kind() string {
	return "s3"
}

func wrapS3Err(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrNotFound
	}
	return err
}
