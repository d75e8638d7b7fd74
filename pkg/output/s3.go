package output

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// DefaultUploadTimeout bounds a single upload when none is configured
const DefaultUploadTimeout = 30 * time.Second

// S3Config describes an S3-compatible bucket
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string // Empty for AWS, set for MinIO and similar
	AccessKey string // Empty uses the default credential chain
	SecretKey string
	Timeout   time.Duration
}

// S3Sink uploads images to object storage
type S3Sink struct {
	Client  s3iface.S3API
	Bucket  string
	Prefix  string
	Timeout time.Duration
}

// NewS3Sink opens a session for cfg
func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsConfig := &aws.Config{}
	if cfg.Region != "" {
		awsConfig.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating s3 session: %w", err)
	}

	return &S3Sink{
		Client:  s3.New(sess),
		Bucket:  cfg.Bucket,
		Prefix:  cfg.Prefix,
		Timeout: cfg.Timeout,
	}, nil
}

// ObjectKey joins the prefix and key
func (s *S3Sink) ObjectKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return path.Join(s.Prefix, key)
}

// Put uploads data under Prefix/key
func (s *S3Sink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	objectKey := s.ObjectKey(key)
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}
	return nil
}
