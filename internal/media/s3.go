package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"fitcoach/internal/config"
)

// S3Client implements ObjectSigner and ObjectHeader against S3-compatible
// bucket storage (including Cloudflare R2 via a custom endpoint).
type S3Client struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Client builds the bucket client from configuration using the standard
// AWS credential chain.
func NewS3Client(ctx context.Context, cfg *config.Config) (*S3Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Media.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Media.S3Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Media.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Media.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Client{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Media.S3Bucket,
	}, nil
}

// Head checks the object's presence. A 404 or NotFound API error maps to
// ErrObjectMissing; other failures are returned as-is and read as missing by
// the caller.
func (c *S3Client) Head(ctx context.Context, key string) error {
	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return ErrObjectMissing
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return ErrObjectMissing
	}
	return err
}

// SignGet produces a presigned GET URL valid for the given TTL.
func (c *S3Client) SignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
