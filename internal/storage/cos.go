package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"

	apperrors "github.com/jvm-dump-analyser/pkg/errors"
)

// COSConfig holds COS-specific configuration.
type COSConfig struct {
	Bucket    string
	Region    string
	SecretID  string
	SecretKey string
	Domain    string // e.g., "myqcloud.com"
	Scheme    string // e.g., "https" or "http"

	// Endpoint is a full bucket URL. When set it replaces the URL built from
	// Bucket, Region, Domain and Scheme.
	Endpoint string
}

// COSStorage reads dump objects from a Tencent Cloud COS bucket.
type COSStorage struct {
	client    *cos.Client
	bucketURL *url.URL
}

// NewCOSStorage creates a new COSStorage instance. Without credentials the
// bucket is read anonymously.
func NewCOSStorage(cfg *COSConfig) (*COSStorage, error) {
	bucketURL, err := cosBucketURL(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if cfg.SecretID != "" && cfg.SecretKey != "" {
		httpClient.Transport = &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		}
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, httpClient)

	return &COSStorage{
		client:    client,
		bucketURL: bucketURL,
	}, nil
}

func cosBucketURL(cfg *COSConfig) (*url.URL, error) {
	raw := cfg.Endpoint
	if raw == "" {
		if cfg.Bucket == "" || cfg.Region == "" {
			return nil, fmt.Errorf("bucket and region are required for COS storage")
		}

		// Set defaults for domain and scheme
		domain := cfg.Domain
		if domain == "" {
			domain = "myqcloud.com"
		}
		scheme := cfg.Scheme
		if scheme == "" {
			scheme = "https"
		}
		raw = fmt.Sprintf("%s://%s.cos.%s.%s", scheme, cfg.Bucket, cfg.Region, domain)
	}

	u, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bucket URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid bucket URL: %s", raw)
	}
	return u, nil
}

// Open streams the object at key.
func (s *COSStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := s.client.Object.Get(ctx, key, nil)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("dump object not found: %s", key), err)
		}
		return nil, apperrors.Wrap(apperrors.CodeReadError, "failed to download from COS", err)
	}
	return resp.Body, nil
}

// Exists checks if an object exists at the specified key.
func (s *COSStorage) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.Object.IsExist(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check existence in COS: %w", err)
	}
	return ok, nil
}

// GetURL returns the object URL for the specified key.
func (s *COSStorage) GetURL(key string) string {
	return s.bucketURL.String() + "/" + strings.TrimPrefix(key, "/")
}
