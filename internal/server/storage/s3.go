// Package storage uploads note assets (audio, images) to an S3-compatible
// object store and turns object keys into public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/voicenotes/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	now = time.Now
)

// Object is an uploaded asset.
type Object struct {
	Key string
	URL string
}

// S3Uploader stores assets in a single bucket under a folder prefix.
type S3Uploader struct {
	client    *s3.Client
	bucket    string
	folder    string
	publicURL string
}

// NewS3Uploader builds the S3 client from cfg. Path-style addressing is
// used so MinIO endpoints work without virtual-host DNS.
func NewS3Uploader(ctx context.Context, cfg *sc.Config) (*S3Uploader, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("error loading s3 config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Uploader{
		client:    client,
		bucket:    cfg.S3Bucket,
		folder:    strings.Trim(cfg.UploadFolder, "/"),
		publicURL: strings.TrimRight(cfg.PublicBaseURL(), "/"),
	}, nil
}

// NewKey returns a unique object key under folder, keeping the extension of
// the original file name.
func NewKey(folder, name string) string {
	d := now().UTC()
	key := fmt.Sprintf("%d/%02d/%02d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(path.Ext(name)))
	if folder == "" {
		return key
	}
	return folder + "/" + key
}

// URL returns the public URL of key.
func (u *S3Uploader) URL(key string) string {
	return u.publicURL + "/" + u.bucket + "/" + key
}

// Upload stores the content of r and returns its key and URL. The body is
// buffered so the SDK can sign and retry it.
func (u *S3Uploader) Upload(ctx context.Context, name, contentType string, r io.Reader) (*Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}

	key := NewKey(u.folder, name)
	in := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, in); err != nil {
		return nil, fmt.Errorf("error uploading %s: %w", name, err)
	}

	return &Object{Key: key, URL: u.URL(key)}, nil
}

// Delete removes key from the bucket.
func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error deleting %s: %w", key, err)
	}
	return nil
}
