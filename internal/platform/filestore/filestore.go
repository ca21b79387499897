package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

// Store holds the uploaded abstract and full-paper documents. Object paths
// recorded on history entries are paths within the configured bucket.
type Store interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Exists(ctx context.Context, objectPath string) (bool, error)
	SignedURL(objectPath string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, objectPath string) error
	Close() error
}

type Config struct {
	Bucket          string
	CredentialsFile string
	PathPrefix      string
}

func ConfigFromEnv() Config {
	return Config{
		Bucket:          strings.TrimSpace(os.Getenv("GCS_BUCKET")),
		CredentialsFile: strings.TrimSpace(os.Getenv("GCS_CREDENTIALS_FILE")),
		PathPrefix:      strings.Trim(strings.TrimSpace(os.Getenv("GCS_PATH_PREFIX")), "/"),
	}
}

func NewFromEnv(ctx context.Context, log *logger.Logger) (Store, error) {
	return New(ctx, log, ConfigFromEnv())
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("filestore: init gcs client: %w", err)
	}

	return &gcsStore{
		log:    log.With("store", "FileStore"),
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.PathPrefix,
	}, nil
}

type gcsStore struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
	prefix string
}

func (s *gcsStore) objectName(objectPath string) string {
	objectPath = strings.TrimLeft(objectPath, "/")
	if s.prefix == "" {
		return objectPath
	}
	return s.prefix + "/" + objectPath
}

func (s *gcsStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	name := s.objectName(objectPath)
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("filestore: upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("filestore: finalize %s: %w", name, err)
	}
	s.log.Debug("uploaded object", "bucket", s.bucket, "object", name)
	return name, nil
}

func (s *gcsStore) Exists(ctx context.Context, objectPath string) (bool, error) {
	name := s.objectName(objectPath)
	_, err := s.client.Bucket(s.bucket).Object(name).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("filestore: stat %s: %w", name, err)
	}
	return true, nil
}

func (s *gcsStore) SignedURL(objectPath string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	name := s.objectName(objectPath)
	url, err := s.client.Bucket(s.bucket).SignedURL(name, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("filestore: sign %s: %w", name, err)
	}
	return url, nil
}

func (s *gcsStore) Delete(ctx context.Context, objectPath string) error {
	name := s.objectName(objectPath)
	if err := s.client.Bucket(s.bucket).Object(name).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("filestore: delete %s: %w", name, err)
	}
	return nil
}

func (s *gcsStore) Close() error {
	return s.client.Close()
}
