package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Store is the blob store the pipeline reads shared assets from and writes
// finished outputs to. It wraps one S3 bucket plus an optional key prefix.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// Config selects the bucket and, optionally, region and key prefix. Other
// credentials come from the standard AWS config chain.
type Config struct {
	Bucket string
	Region string
	Prefix string
}

// New creates a Store using the default AWS configuration chain.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return &Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Put uploads a blob under the store's prefix.
func (s *Store) Put(ctx context.Context, name string, body io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	_, err := s.client.PutObject(ctx, in)
	return err
}

// PutFile uploads a local file, keyed by its given name.
func (s *Store) PutFile(ctx context.Context, name, localPath, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()
	return s.Put(ctx, name, f, contentType)
}

// Get fetches a blob. Caller must Close the returned body.
func (s *Store) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// GetToFile downloads a blob to a local path, used to pull shared assets
// (fonts, brand mark) at startup.
func (s *Store) GetToFile(ctx context.Context, name, localPath string) error {
	body, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = io.Copy(f, body)
	return err
}

// Exists reports whether a blob is present; 404s map to (false, nil).
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}
	return false, err
}

// ParseURI splits an "s3://bucket/key" reference into bucket and key.
// ok is false for anything else, including plain local paths.
func ParseURI(raw string) (bucket, key string, ok bool) {
	const scheme = "s3://"
	if !strings.HasPrefix(raw, scheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(raw, scheme)
	slash := strings.Index(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return "", "", false
	}
	return rest[:slash], rest[slash+1:], true
}

// ResolveLocal makes a shared-asset reference usable as a local file path.
// Plain paths pass through untouched; "s3://bucket/key" references are
// downloaded into dir and the downloaded path is returned.
func ResolveLocal(ctx context.Context, raw, dir string) (string, error) {
	bucket, key, ok := ParseURI(raw)
	if !ok {
		return raw, nil
	}

	store, err := New(ctx, Config{Bucket: bucket})
	if err != nil {
		return "", err
	}
	local := filepath.Join(dir, path.Base(key))
	if err := store.GetToFile(ctx, key, local); err != nil {
		return "", fmt.Errorf("fetch %s: %w", raw, err)
	}
	return local, nil
}
