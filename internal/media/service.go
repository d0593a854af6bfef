package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
	"github.com/stallcraft/backend/pkg/storage/gcs"
)

const keyPrefix = "media/"

// Service moves uploaded files into object storage and removes them when the
// owning record changes. Deletes are best-effort: a failed delete is logged,
// never surfaced.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	Replace(ctx context.Context, oldURL string, input UploadInput) (*UploadResult, error)
	DeleteByURL(ctx context.Context, url string)
}

// UploadInput describes one incoming file.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadResult is the stored location and classification of an upload.
type UploadResult struct {
	URL  string
	Key  string
	Kind enums.MediaKind
}

// objectStore is the subset of the GCS bucket surface the service needs.
type objectStore interface {
	Upload(ctx context.Context, object, contentType string, payload io.Reader) (string, error)
	Delete(ctx context.Context, object string) error
	SignedGetURL(object string, expiry time.Duration) (string, error)
}

type service struct {
	store     objectStore
	bucket    string
	maxBytes  int64
	urlExpiry time.Duration
	now       func() time.Time
	logg      *logger.Logger
}

// Option tweaks service construction.
type Option func(*service)

// WithClock overrides the time source used for object key prefixes.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService constructs the media service over the provided object store.
// Download URLs are signed with the configured expiry so they stay readable
// on a private bucket.
func NewService(store objectStore, bucket string, cfg config.MediaConfig, gcsCfg config.GCSConfig, logg *logger.Logger, opts ...Option) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket name required")
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	if gcsCfg.DownloadURLExpiry <= 0 {
		return nil, fmt.Errorf("download url expiry must be positive")
	}
	s := &service{
		store:     store,
		bucket:    bucket,
		maxBytes:  int64(cfg.MaxUploadMB) << 20,
		urlExpiry: gcsCfg.DownloadURLExpiry,
		now:       time.Now,
		logg:      logg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ObjectKey builds the bucket key for an upload arriving at the given moment.
func ObjectKey(now time.Time, filename string) string {
	return fmt.Sprintf("%s%d_%s", keyPrefix, now.UnixMilli(), sanitizeFilename(filename))
}

func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == "/" {
		return "upload"
	}
	return base
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.Content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content is required")
	}
	if input.Size > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %dMB upload limit", s.maxBytes>>20))
	}

	key := ObjectKey(s.now(), input.Filename)

	// The declared size can lie, so count the stream too and reject after
	// the fact rather than silently storing a truncated blob.
	counted := &countingReader{r: input.Content}
	payload := io.LimitReader(counted, s.maxBytes+1)

	url, err := s.store.Upload(ctx, key, input.ContentType, payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading media")
	}
	if counted.n > s.maxBytes {
		if err := s.store.Delete(ctx, key); err != nil && err != gcs.ErrObjectNotFound {
			s.warn(ctx, "oversized upload cleanup failed")
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %dMB upload limit", s.maxBytes>>20))
	}

	if signed, err := s.store.SignedGetURL(key, s.urlExpiry); err == nil && signed != "" {
		url = signed
	} else if err != nil {
		s.warn(ctx, "signing download url failed, serving the upload url")
	}

	kind := enums.MediaKindImage
	if strings.HasPrefix(input.ContentType, "video/") {
		kind = enums.MediaKindVideo
	}

	return &UploadResult{URL: url, Key: key, Kind: kind}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (s *service) Replace(ctx context.Context, oldURL string, input UploadInput) (*UploadResult, error) {
	result, err := s.Upload(ctx, input)
	if err != nil {
		return nil, err
	}
	if oldURL != "" {
		s.DeleteByURL(ctx, oldURL)
	}
	return result, nil
}

// DeleteByURL removes the object behind a stored media URL. URLs that do not
// resolve to an object in our bucket are skipped with a warning.
func (s *service) DeleteByURL(ctx context.Context, url string) {
	if url == "" {
		return
	}

	key, ok := gcs.ObjectKeyFromURL(url, s.bucket)
	if !ok {
		s.warn(ctx, "media url not recognized, skipping delete")
		return
	}

	if err := s.store.Delete(ctx, key); err != nil && err != gcs.ErrObjectNotFound {
		s.warn(ctx, "media delete failed")
	}
}

func (s *service) warn(ctx context.Context, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithCollection(ctx, "media"), msg)
}
