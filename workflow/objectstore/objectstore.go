// Package objectstore provides the S3 download/upload activities the
// Temporal workflow uses to move files in and out of local scratch space,
// grounded on the original worker's download.rs/upload.rs activities.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client wraps an S3 client with the download/upload operations the ingest
// workflow needs. It takes no locking of its own: the AWS SDK's client is
// already safe for concurrent use.
type Client struct {
	s3 *s3.Client
}

// New loads the default AWS configuration (environment, shared config file,
// EC2/ECS role) and returns a Client backed by it.
func New(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Client{s3: s3.NewFromConfig(cfg)}, nil
}

// NewFromClient wraps an already-constructed S3 client, for callers that
// need custom endpoint resolution (e.g. pointing at a local S3-compatible
// store in tests).
func NewFromClient(client *s3.Client) *Client {
	return &Client{s3: client}
}

// Download fetches the object at s3URI and writes it to localPath.
func (c *Client) Download(ctx context.Context, s3URI, localPath string) error {
	bucket, key, err := ParseURI(s3URI)
	if err != nil {
		return err
	}

	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return fmt.Errorf("get object %s: %w", s3URI, err)
	}
	defer out.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create local file %s: %w", localPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return fmt.Errorf("write object body to %s: %w", localPath, err)
	}
	return nil
}

// Upload reads localPath and writes it to s3URI.
func (c *Client) Upload(ctx context.Context, localPath, s3URI string) error {
	bucket, key, err := ParseURI(s3URI)
	if err != nil {
		return err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open local file %s: %w", localPath, err)
	}
	defer f.Close()

	if _, err := c.s3.PutObject(ctx, &s3.PutObjectInput{Bucket: aws.String(bucket), Key: aws.String(key), Body: f}); err != nil {
		return fmt.Errorf("put object %s: %w", s3URI, err)
	}
	return nil
}

// ParseURI splits an "s3://bucket/key" URI into its bucket and key parts.
func ParseURI(s3URI string) (bucket, key string, err error) {
	const scheme = "s3://"
	if !strings.HasPrefix(s3URI, scheme) {
		return "", "", fmt.Errorf("parse s3 uri %q: missing %q scheme", s3URI, scheme)
	}
	rest := strings.TrimPrefix(s3URI, scheme)
	idx := strings.IndexByte(rest, '/')
	if idx < 0 || idx == 0 {
		return "", "", fmt.Errorf("parse s3 uri %q: missing bucket or key", s3URI)
	}
	return rest[:idx], rest[idx+1:], nil
}
