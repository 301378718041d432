package clients

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"filedex/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the bucket coordinates for S3Client
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Client lists the objects directly under a bucket prefix
type S3Client struct {
	config   S3Config
	s3Client *s3.Client
}

// NewS3Client creates a new S3 client. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	awsClient := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{config: cfg, s3Client: awsClient}, nil
}

// ListFiles lists the objects under the prefix, skipping common prefixes
func (sc *S3Client) ListFiles(ctx context.Context) ([]models.FileMetadata, error) {
	prefix := strings.TrimPrefix(sc.config.Prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	paginator := s3.NewListObjectsV2Paginator(sc.s3Client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(sc.config.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var files []models.FileMetadata
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", sc.config.Bucket, err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, prefix)
			// folder placeholder objects
			if name == "" || strings.HasSuffix(name, "/") {
				continue
			}

			files = append(files, models.FileMetadata{
				Name:         name,
				Path:         key,
				Size:         models.NewSize(aws.ToInt64(obj.Size)),
				LastModified: models.NewTimestamp(aws.ToTime(obj.LastModified)),
				DownloadURL:  sc.DownloadURL(key),
				FileType:     models.FileType(name),
			})
		}
	}

	return files, nil
}

// DownloadURL returns the public URL of key
func (sc *S3Client) DownloadURL(key string) string {
	if sc.config.Endpoint != "" {
		base := strings.TrimSuffix(sc.config.Endpoint, "/")
		return base + "/" + url.PathEscape(sc.config.Bucket) + "/" + escapePath(key)
	}

	u := url.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s.s3.%s.amazonaws.com", sc.config.Bucket, sc.config.Region),
		Path:   "/" + key,
	}
	return u.String()
}
