// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// publishing site images. It wraps the AWS SDK v2 and is configured for
// path-style access (required by CEPH/Hetzner).
package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dustin/go-humanize"
)

// Config holds the connection settings for the public bucket.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is an optional CDN or custom domain serving the bucket.
	PublicURL string
	// Prefix is prepended to every object key, e.g. "images".
	Prefix string
}

// Client wraps an S3 client for one public bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string
	prefix    string
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if endpoint or credentials are empty, allowing the app to
// start without storage.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, nil
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:                     cfg.Region,
		BaseEndpoint:               aws.String(endpoint),
		Credentials:                credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle:               true,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})

	return &Client{
		s3:        s3Client,
		bucket:    cfg.Bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		prefix:    strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Key returns the object key for an asset name under the configured prefix.
func (c *Client) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if c.prefix == "" {
		return name
	}
	return c.prefix + "/" + name
}

// Upload stores a public-read object under Key(name).
func (c *Client) Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) error {
	key := c.Key(name)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// UploadDir uploads every regular file below dir, keyed by its path
// relative to dir. It stops at the first failure and returns the number
// of files uploaded so far.
func (c *Client) UploadDir(ctx context.Context, dir string) (int, error) {
	var uploaded int
	var total int64
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open %s: %w", p, err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}

		if err := c.Upload(ctx, name, ContentType(name), f, info.Size()); err != nil {
			return err
		}
		uploaded++
		total += info.Size()
		slog.Info("asset uploaded", "key", c.Key(name), "size", humanize.Bytes(uint64(info.Size())))
		return nil
	})
	if err != nil {
		return uploaded, fmt.Errorf("upload dir %s: %w", dir, err)
	}
	slog.Info("asset upload complete", "files", uploaded, "size", humanize.Bytes(uint64(total)))
	return uploaded, nil
}

// FileURL returns the public URL for an object key.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// ImageURL resolves an asset reference uploaded with UploadDir to its
// public URL. The bucket serves originals, so width is ignored.
func (c *Client) ImageURL(ref string, _ int) string {
	if ref == "" {
		return ""
	}
	return c.FileURL(c.Key(ref))
}

// Bucket returns the name of the public bucket.
func (c *Client) Bucket() string {
	return c.bucket
}

// ContentType guesses a MIME type from a file name's extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
