package persistent

import (
	"bytes"
	"context"
	"fmt"

	"github.com/andreyxaxa/Scan-Checkin/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const _pngContentType = "image/png"

type ReceiptArchiveRepo struct {
	*s3client.S3Client
	bucket string
}

func NewReceiptArchiveRepo(s3c *s3client.S3Client, bucket string) *ReceiptArchiveRepo {
	return &ReceiptArchiveRepo{s3c, bucket}
}

func (r *ReceiptArchiveRepo) Store(ctx context.Context, key string, png []byte) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(png),
		ContentType:   aws.String(_pngContentType),
		ContentLength: aws.Int64(int64(len(png))),
	})
	if err != nil {
		return fmt.Errorf("ReceiptArchiveRepo - Store - r.Client.PutObject: %w", err)
	}

	return nil
}
