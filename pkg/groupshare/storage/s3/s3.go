// Package s3 provides an S3-compatible blob store (AWS S3, MinIO).
// Namespaces map to buckets, one per album.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/groupshare/groupshare/pkg/groupshare"
)

// Config options for the S3 backend.
type Config struct {
	Region          string // AWS region
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (required for MinIO)
}

// Backend is an S3-compatible implementation of groupshare.BlobStore.
type Backend struct {
	client *s3.Client
	region string
}

// New creates a new S3-compatible storage backend.
func New(config Config) (*Backend, error) {
	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	return &Backend{
		client: s3.NewFromConfig(awsCfg, s3Options...),
		region: config.Region,
	}, nil
}

func (b *Backend) NamespaceExists(ctx context.Context, namespace string) (bool, error) {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(namespace),
	})
	if err == nil {
		return true, nil
	}
	if isBucketNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check bucket %s: %w", namespace, err)
}

func (b *Backend) CreateNamespace(ctx context.Context, namespace string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(namespace),
	}
	// Location constraint is required for every region except us-east-1.
	if b.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(b.region),
		}
	}

	_, err := b.client.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", namespace, err)
	}
	return nil
}

func (b *Backend) RemoveNamespace(ctx context.Context, namespace string) error {
	exists, err := b.NamespaceExists(ctx, namespace)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	// S3 refuses to delete a non-empty bucket, so drain it first.
	keys, err := b.List(ctx, namespace)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := b.Remove(ctx, namespace, key); err != nil {
			return err
		}
	}

	_, err = b.client.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(namespace),
	})
	if err != nil {
		if isBucketNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete bucket %s: %w", namespace, err)
	}
	return nil
}

func (b *Backend) Put(ctx context.Context, namespace, key string, r io.Reader, params groupshare.PutParams) error {
	uploader := manager.NewUploader(b.client)

	input := &s3.PutObjectInput{
		Bucket:   aws.String(namespace),
		Key:      aws.String(key),
		Body:     r,
		Metadata: params.Metadata,
	}
	if params.ContentType != "" {
		input.ContentType = aws.String(params.ContentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, namespace, key string) (io.ReadCloser, error) {
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(namespace),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) || isBucketNotFound(err) {
			return nil, groupshare.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}
	return result.Body, nil
}

func (b *Backend) Stat(ctx context.Context, namespace, key string) (*groupshare.ObjectMeta, error) {
	result, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(namespace),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) || isBucketNotFound(err) {
			return nil, groupshare.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to stat S3 object: %w", err)
	}

	meta := &groupshare.ObjectMeta{
		Key:      key,
		Metadata: make(map[string]string, len(result.Metadata)),
	}
	// S3 returns user metadata keys lowercased, matching how the service
	// writes them.
	for k, v := range result.Metadata {
		meta.Metadata[k] = v
	}
	if result.ContentLength != nil {
		meta.Size = *result.ContentLength
	}
	if result.ContentType != nil {
		meta.ContentType = *result.ContentType
	}
	if result.LastModified != nil {
		meta.UpdatedAt = *result.LastModified
	}
	return meta, nil
}

func (b *Backend) List(ctx context.Context, namespace string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(namespace),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if isBucketNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to list S3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (b *Backend) Remove(ctx context.Context, namespace, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(namespace),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// isBucketNotFound reports whether err indicates an absent bucket. MinIO
// and AWS disagree on the exact error shape, so check both the modeled
// types and the API error code.
func isBucketNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &notFound) || errors.As(err, &noSuchBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket", "NotFound":
			return true
		}
	}
	return false
}
