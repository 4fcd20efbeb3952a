package imagestore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps images in an S3 bucket with public-read objects.
type S3Store struct {
	bucket   string
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Store loads the default AWS config (env credentials, shared
// config) and targets the given bucket.
func NewS3Store(ctx context.Context, bucket string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		bucket:   bucket,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Save uploads the image under a unique key and returns the key.
func (s *S3Store) Save(filename, contentType string, r io.Reader) (string, error) {
	key := uniqueName(filename)
	_, err := s.uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to S3: %w", filename, err)
	}
	return key, nil
}

// Open fetches the object body by key.
func (s *S3Store) Open(ref string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from S3: %w", ref, err)
	}
	return out.Body, nil
}

// URL returns the public object URL.
func (s *S3Store) URL(ref string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, ref)
}
