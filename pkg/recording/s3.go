package recording

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps captures in an S3 bucket.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := recording.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "captures/", 50<<20)
type S3Store struct {
	client    *s3.Client
	bucket    string
	prefix    string
	maxSize   int64
	urlExpiry time.Duration
}

// NewS3Store creates a capture store over an S3 bucket. prefix namespaces
// the object keys (e.g. "captures/"); maxSize caps a single capture in
// bytes, 0 meaning no limit.
func NewS3Store(client *s3.Client, bucket, prefix string, maxSize int64) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		maxSize:   maxSize,
		urlExpiry: 24 * time.Hour,
	}
}

// WithURLExpiry sets how long presigned download URLs are valid.
func (s *S3Store) WithURLExpiry(d time.Duration) *S3Store {
	s.urlExpiry = d
	return s
}

// Save uploads a capture and returns its id.
func (s *S3Store) Save(name string, size int64, r io.Reader) (string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", ErrTooLarge
	}

	id := newCaptureID()
	key := s.prefix + id

	// Captures are small (tens of KB of frames); buffering keeps the
	// upload a single PutObject.
	var buf bytes.Buffer
	if s.maxSize > 0 {
		n, err := io.Copy(&buf, io.LimitReader(r, s.maxSize+1))
		if err != nil {
			return "", err
		}
		if n > s.maxSize {
			return "", ErrTooLarge
		}
	} else {
		if _, err := io.Copy(&buf, r); err != nil {
			return "", err
		}
	}

	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/octet-stream"),
		Metadata: map[string]string{
			"capture-name": name,
			"capture-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("recording: s3 upload failed: %w", err)
	}
	return id, nil
}

// Open retrieves a capture by id.
func (s *S3Store) Open(id string) (*Recording, error) {
	key := s.prefix + id

	head, err := s.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ErrNotFound
	}

	obj, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ErrNotFound
	}

	name := id
	if n, ok := head.Metadata["capture-name"]; ok {
		name = n
	}
	created := time.Time{}
	if t, ok := head.Metadata["capture-time"]; ok {
		created, _ = time.Parse(time.RFC3339, t)
	}
	size := int64(0)
	if head.ContentLength != nil {
		size = *head.ContentLength
	}

	presign := s3.NewPresignClient(s.client)
	url := ""
	if res, err := presign.PresignGetObject(context.Background(),
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(s.urlExpiry),
	); err == nil {
		url = res.URL
	}

	return &Recording{
		ID:        id,
		Name:      name,
		Size:      size,
		CreatedAt: created,
		URL:       url,
		Reader:    obj.Body,
	}, nil
}

// List returns metadata for every capture under the store's prefix. Names
// live in object metadata, which listing does not return, so Name falls back
// to the id.
func (s *S3Store) List() ([]*Recording, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var out []*Recording
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.Background())
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			id := strings.TrimPrefix(*obj.Key, s.prefix)
			rec := &Recording{ID: id, Name: id}
			if obj.Size != nil {
				rec.Size = *obj.Size
			}
			if obj.LastModified != nil {
				rec.CreatedAt = *obj.LastModified
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// Cleanup removes captures older than maxAge.
func (s *S3Store) Cleanup(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var toDelete []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.Background())
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			if obj.LastModified != nil && obj.LastModified.Before(cutoff) && obj.Key != nil {
				toDelete = append(toDelete, *obj.Key)
			}
		}
	}

	for _, key := range toDelete {
		s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	}
	return nil
}
