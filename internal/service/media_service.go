package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"novelshelf/internal/config"
	"novelshelf/internal/models"
	"novelshelf/internal/observability"
)

// MediaUploader abstracts the s3manager upload call so tests can stub it.
type MediaUploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// MediaService stores user images (banners, avatars, covers) in the media
// bucket and returns public URLs. The media host handles resizing and format
// conversion downstream.
type MediaService struct {
	uploader  MediaUploader
	bucket    string
	cdnPrefix string
}

const maxUploadBytes = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// NewMediaService opens an AWS session for the configured media bucket.
func NewMediaService(cfg *config.Config) (*MediaService, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.MediaRegion),
	})
	if err != nil {
		return nil, err
	}

	return &MediaService{
		uploader:  s3manager.NewUploader(sess),
		bucket:    cfg.MediaBucket,
		cdnPrefix: cfg.MediaCDNPrefix,
	}, nil
}

// NewMediaServiceWithUploader wires a custom uploader. Used by tests.
func NewMediaServiceWithUploader(uploader MediaUploader, bucket, cdnPrefix string) *MediaService {
	return &MediaService{uploader: uploader, bucket: bucket, cdnPrefix: cdnPrefix}
}

// UploadImage stores the image under a content-addressed key and returns its
// public URL. Re-uploading identical bytes yields the same key, so duplicate
// uploads are harmless.
func (s *MediaService) UploadImage(ctx context.Context, kind, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", models.NewValidationError("File is empty")
	}
	if len(data) > maxUploadBytes {
		return "", models.NewValidationError("File too large (max 5 MiB)")
	}

	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", models.NewValidationError("Unsupported image type (jpeg, png, webp or gif)")
	}

	switch kind {
	case "banner", "avatar", "cover":
		// valid
	default:
		return "", models.NewValidationError("Invalid upload kind")
	}

	sum := sha256.Sum256(data)
	key := fmt.Sprintf("%s/%s%s", kind, hex.EncodeToString(sum[:]), ext)

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:         aws.String("public-read"),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		observability.MediaUploads.WithLabelValues("error").Inc()
		return "", models.NewInternalError(err)
	}

	observability.MediaUploads.WithLabelValues("ok").Inc()
	return s.urlForKey(key), nil
}

func (s *MediaService) urlForKey(key string) string {
	if s.cdnPrefix != "" {
		return strings.TrimSuffix(s.cdnPrefix, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
