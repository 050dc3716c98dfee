package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/talentscout/hiring-assistant/internal/candidate"
	"go.uber.org/zap"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader mirrors local records to an S3 bucket. It is optional: an upload
// failure is the caller's to log, never to fail the conversation on.
type Uploader struct {
	client objectPutter
	bucket string
	logger *zap.Logger
}

// NewUploader builds an S3 uploader, or nil when no bucket is configured.
func NewUploader(ctx context.Context, bucket, region string, logger *zap.Logger) (*Uploader, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if region = strings.TrimSpace(region); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Uploader{client: s3.NewFromConfig(cfg), bucket: bucket, logger: logger}, nil
}

// Upload puts one record into the bucket under candidates/<id>.json.
func (u *Uploader) Upload(ctx context.Context, rec *candidate.Record) error {
	if u == nil {
		return nil
	}
	if rec == nil {
		return fmt.Errorf("record is nil")
	}

	body, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	key := fmt.Sprintf("candidates/%s.json", rec.ID)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	u.logger.Info("candidate record uploaded",
		zap.String("bucket", u.bucket),
		zap.String("key", key),
	)

	return nil
}
