// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// UploaderStub is an in-memory stand-in for the s3manager uploader. It
// records every upload so tests can assert keys, buckets and payloads
// without touching AWS.
type UploaderStub struct {
	mu      sync.Mutex
	Uploads []*s3manager.UploadInput
	// Err, when set, is returned from every upload call.
	Err error
}

// UploadWithContext records the input and returns a synthetic location.
func (u *UploaderStub) UploadWithContext(_ aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	u.Uploads = append(u.Uploads, input)
	return &s3manager.UploadOutput{
		Location: "https://" + aws.StringValue(input.Bucket) + ".s3.amazonaws.com/" + aws.StringValue(input.Key),
	}, nil
}

// Last returns the most recent recorded upload, or nil.
func (u *UploaderStub) Last() *s3manager.UploadInput {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.Uploads) == 0 {
		return nil
	}
	return u.Uploads[len(u.Uploads)-1]
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
