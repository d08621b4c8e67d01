package filestorage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const acl = "private"

// AWSConfig holds the S3 credentials.
type AWSConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// S3Client is a client for AWS S3 service
type S3Client struct {
	service    *s3.S3
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
}

// NewAWSClient returns a client with implementation for S3.
func NewAWSClient(c AWSConfig) (FileStorage, error) {
	if c.AccessKeyID == "" {
		return nil, fmt.Errorf("missing ACCESS_KEY_ID environment variable")
	}
	if c.SecretAccessKey == "" {
		return nil, fmt.Errorf("missing SECRET_ACCESS_KEY environment variable")
	}
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(c.Region),
		Credentials: credentials.NewStaticCredentials(c.AccessKeyID, c.SecretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session, error %w", err)
	}
	return &S3Client{
		service:    s3.New(sess),
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
	}, nil
}

// Upload sends b to the bucket under fileName and returns the object URL.
func (awsClient *S3Client) Upload(ctx context.Context, b []byte, bucket, fileName string) (string, error) {
	up, err := awsClient.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(bucket),
		ACL:    aws.String(acl),
		Key:    aws.String(fileName),
		Body:   bytes.NewReader(b),
	})
	if err != nil {
		return "", fmt.Errorf("failed to send file [%s] to bucket [%s], error %w", fileName, bucket, err)
	}
	return up.Location, nil
}

// Download reads a whole object.
func (awsClient *S3Client) Download(ctx context.Context, bucket, fileName string) ([]byte, error) {
	buf := aws.NewWriteAtBuffer(nil)
	_, err := awsClient.downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(fileName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get file [%s] from bucket [%s], error %w", fileName, bucket, err)
	}
	return buf.Bytes(), nil
}

// FileExists checks if the object exists.
func (awsClient *S3Client) FileExists(ctx context.Context, bucket, fileName string) bool {
	_, err := awsClient.service.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(fileName),
	})
	return err == nil
}
