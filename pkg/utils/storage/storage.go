// Package storage puts room images in an S3 compatible bucket (AWS S3 or
// Cloudflare R2) and maps object keys to public URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"

	"roomfinder_backend/pkg/config"
)

var ErrNotConfigured = errors.New("storage is not configured")

type Client struct {
	s3         *s3.Client
	bucket     string
	publicBase string
}

func New(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:         client,
		bucket:     cfg.Bucket,
		publicBase: PublicBase(cfg),
	}, nil
}

// PublicBase is the URL prefix objects are served from. Without an explicit
// public URL the bucket's own S3 address is used.
func PublicBase(cfg config.StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	if cfg.Endpoint != "" {
		return strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// ObjectKey builds rooms/<owner>/<room>/<unix>_<slug>.<ext>.
func ObjectKey(ownerID string, roomID uint, filename, ext string, at time.Time) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("rooms/%s/%d/%d_%s.%s", ownerID, roomID, at.Unix(), name, strings.TrimPrefix(ext, "."))
}

func (c *Client) URL(key string) string {
	return c.publicBase + "/" + key
}

// KeyFromURL reports the object key behind url, or false when url was not
// issued by this bucket.
func (c *Client) KeyFromURL(url string) (string, bool) {
	prefix := c.publicBase + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}

// Put uploads body under key and returns its public URL.
func (c *Client) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload %s: %w", key, err)
	}
	return c.URL(key), nil
}

// Delete removes the object behind url. URLs from elsewhere are ignored.
func (c *Client) Delete(ctx context.Context, url string) error {
	key, ok := c.KeyFromURL(url)
	if !ok {
		return nil
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("could not delete %s: %w", key, err)
	}
	return nil
}
