// Package storage uploads cover images and avatars to S3 and hands back the
// public URLs persisted on the documents.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"uplift/internal/utils"
	"uplift/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// acceptedContentTypes maps allowed upload mime types to the stored file
// extension.
var acceptedContentTypes = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
}

const objectNameSize = 24

// ObjectKey derives the storage key for an upload: <kind>/<random>.<ext>.
// Returns ErrInvalidUpload for mime types outside the allow-list.
func ObjectKey(kind, contentType string) (string, error) {
	ext, ok := acceptedContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", types.ErrInvalidUpload, contentType)
	}
	return fmt.Sprintf("%s/%s.%s", kind, utils.NanoIDSize(objectNameSize), ext), nil
}

type Uploads struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewUploads(client *s3.Client, bucket, baseURL string) *Uploads {
	return &Uploads{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload stores the body under a fresh key and returns the public URL.
func (u *Uploads) Upload(ctx context.Context, kind string, body io.Reader, contentType string) (string, error) {
	key, err := ObjectKey(kind, contentType)
	if err != nil {
		return "", err
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return u.PublicURL(key), nil
}

func (u *Uploads) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (u *Uploads) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", u.baseURL, key)
}
