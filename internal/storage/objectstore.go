package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStore is the asset-host boundary: uploaded media goes out, a
// public URL comes back.
type ObjectStore interface {
	Put(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
	Enabled() bool
}

type S3Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string // MinIO or other S3-compatible host; empty for AWS
	PublicBase   string // base URL assets are served from
}

type s3Store struct {
	cfg    S3Config
	client *s3.Client
}

// NewS3Store builds the object store, or a disabled noop when no bucket is
// configured so local development works without credentials.
func NewS3Store(ctx context.Context, cfg S3Config) (ObjectStore, error) {
	if cfg.Bucket == "" {
		return &noopObjectStore{}, nil
	}
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return &s3Store{cfg: cfg, client: client}, nil
}

func (s *s3Store) Enabled() bool { return true }

func (s *s3Store) Put(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	key := storageKey(folder, filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return s.publicURL(key), nil
}

func (s *s3Store) publicURL(key string) string {
	if s.cfg.PublicBase != "" {
		return strings.TrimRight(s.cfg.PublicBase, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// storageKey namespaces objects by folder and date; the uuid keeps uploads
// with identical filenames from clobbering each other.
func storageKey(folder, filename string) string {
	d := time.Now()
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%d/%02d/%v%s", folder, d.Year(), d.Month(), uuid.New(), ext)
}

var ErrUploadsDisabled = errors.New("object storage not configured")

type noopObjectStore struct{}

func (n *noopObjectStore) Enabled() bool { return false }
func (n *noopObjectStore) Put(context.Context, string, string, string, []byte) (string, error) {
	return "", ErrUploadsDisabled
}
