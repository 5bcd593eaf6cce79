// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/catalogadmin/backend/internal/config"
	"github.com/catalogadmin/backend/internal/errs"
	"github.com/catalogadmin/backend/internal/i18n"
)

// ImageHost stores image bytes remotely and returns a publicly fetchable URL.
// Upload blocks until the remote call settles.
type ImageHost interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// ImageFile is one uploaded image as received from the client.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewImageHost builds the configured image host wrapped in a circuit breaker.
func NewImageHost(cfg *config.Config) (ImageHost, error) {
	var host ImageHost

	switch cfg.ImageHost.Provider {
	case "cloudinary":
		cld, err := cloudinary.NewFromURL(cfg.Cloudinary.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create Cloudinary client: %w", err)
		}
		host = NewCloudinaryImageHost(&cld.Upload, cfg.Cloudinary.Folder)
	case "s3":
		awsCfg := &aws.Config{Region: aws.String(cfg.AWS.Region)}
		if cfg.AWS.AccessKeyID != "" {
			awsCfg.Credentials = credentials.NewStaticCredentials(
				cfg.AWS.AccessKeyID,
				cfg.AWS.SecretAccessKey,
				"",
			)
		}
		sess, err := session.NewSession(awsCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		host = NewS3ImageHost(s3.New(sess), cfg.AWS)
	case "local":
		host = NewLocalImageHost(cfg.ImageHost.LocalDir, cfg.ImageHost.LocalBaseURL)
	default:
		return nil, fmt.Errorf("unknown image host %q", cfg.ImageHost.Provider)
	}

	logrus.WithField("provider", cfg.ImageHost.Provider).Info("Image host configured")
	return NewBreakerImageHost(host, cfg.ImageHost), nil
}

// cloudinaryUploader is the part of the Cloudinary upload API the host depends on.
type cloudinaryUploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

type CloudinaryImageHost struct {
	uploader cloudinaryUploader
	folder   string
}

func NewCloudinaryImageHost(u cloudinaryUploader, folder string) *CloudinaryImageHost {
	return &CloudinaryImageHost{uploader: u, folder: folder}
}

func (h *CloudinaryImageHost) Upload(ctx context.Context, data []byte) (string, error) {
	result, err := h.uploader.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       h.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result == nil {
		return "", errors.New("failed to upload to Cloudinary: empty response")
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload to Cloudinary: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("failed to upload to Cloudinary: no URL returned")
	}
	return result.SecureURL, nil
}

type S3ImageHost struct {
	s3Client s3iface.S3API
	config   config.AWSConfig
	folder   string
}

func NewS3ImageHost(client s3iface.S3API, cfg config.AWSConfig) *S3ImageHost {
	return &S3ImageHost{s3Client: client, config: cfg, folder: "products"}
}

func (h *S3ImageHost) Upload(ctx context.Context, data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	key := generateKey(h.folder, mtype.Extension())

	_, err := h.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(mtype.String()),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return h.objectURL(key), nil
}

func (h *S3ImageHost) objectURL(key string) string {
	if h.config.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(h.config.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		h.config.S3Bucket, h.config.Region, key)
}

// LocalImageHost writes images to a directory served by the development router.
type LocalImageHost struct {
	dir     string
	baseURL string
}

func NewLocalImageHost(dir, baseURL string) *LocalImageHost {
	return &LocalImageHost{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (h *LocalImageHost) Upload(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := generateKey("products", mimetype.Detect(data).Extension())
	path := filepath.Join(h.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return fmt.Sprintf("%s/%s", h.baseURL, key), nil
}

// BreakerImageHost stops calling a failing host until it has had time to recover.
type BreakerImageHost struct {
	next ImageHost
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreakerImageHost(next ImageHost, cfg config.ImageHostConfig) *BreakerImageHost {
	var st gobreaker.Settings
	st.Name = cfg.BreakerName
	st.Timeout = time.Duration(cfg.BreakerTimeout) * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= cfg.BreakerMinCalls && failureRatio >= cfg.BreakerFailRatio
	}
	// a caller giving up is not a host failure
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		logrus.WithFields(logrus.Fields{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		}).Warn("Image host circuit breaker changed state")
	}

	return &BreakerImageHost{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[string](st),
	}
}

func (b *BreakerImageHost) Upload(ctx context.Context, data []byte) (string, error) {
	url, err := b.cb.Execute(func() (string, error) {
		return b.next.Upload(ctx, data)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errs.Upload(i18n.KeyFileUnavailable, err)
	}
	return url, err
}

func generateKey(folder, ext string) string {
	// Create filename with timestamp and UUID
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}

	return filename
}
