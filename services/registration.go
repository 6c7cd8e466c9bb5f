package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Yulian302/findit-gateway/auth/types"
	"github.com/Yulian302/findit-gateway/common/config"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/logging"
	"github.com/Yulian302/findit-gateway/metrics"
	"github.com/Yulian302/findit-gateway/store"
	"github.com/google/uuid"
)

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type RegistrationResult struct {
	Name      string           `json:"name"`
	Timestamp int64            `json:"timestamp"`
	Records   []listing.Record `json:"records"`
}

type RegistrationService interface {
	Register(ctx context.Context, id types.Identity, name string, images []ImageUpload) (*RegistrationResult, error)
}

type RegistrationServiceImpl struct {
	blobs   store.BlobStore
	records listing.RecordStore
	cfg     config.ListingConfig
	maxSize int64

	now   func() time.Time
	newID func() string
}

func NewRegistrationServiceImpl(blobs store.BlobStore, records listing.RecordStore, cfg config.ListingConfig, maxSize int64) *RegistrationServiceImpl {
	return &RegistrationServiceImpl{
		blobs:   blobs,
		records: records,
		cfg:     cfg,
		maxSize: maxSize,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *RegistrationServiceImpl) Register(ctx context.Context, id types.Identity, name string, images []ImageUpload) (*RegistrationResult, error) {
	if id.IsZero() {
		return nil, apperror.ErrAuthRequired
	}

	name = strings.TrimSpace(name)
	if err := validFolderName(name); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", apperror.ErrInvalidInput)
	}
	for _, img := range images {
		if img.Size <= 0 || (s.maxSize > 0 && img.Size > s.maxSize) {
			return nil, fmt.Errorf("%w: %s", apperror.ErrFileSizeInvalid, img.Filename)
		}
	}

	ts := s.now().UnixMilli()
	prefix := string(UserRoot(s.cfg.RootPrefix, id)) + s.cfg.ReservedFolder + "/" + name + "/"

	res := &RegistrationResult{
		Name:      name,
		Timestamp: ts,
		Records:   make([]listing.Record, 0, len(images)),
	}

	for _, img := range images {
		rec, err := s.storeOne(ctx, id, name, prefix, ts, img)
		if err != nil {
			metrics.RecordRegistration(len(res.Records), false)
			logging.FromContext(ctx).Error("registration failed",
				slog.String("user_id", id.UserID),
				slog.String("name", name),
				slog.Int("stored", len(res.Records)),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("%w: %w", apperror.ErrUploadFailed, err)
		}
		res.Records = append(res.Records, rec)
	}

	metrics.RecordRegistration(len(res.Records), true)
	return res, nil
}

func (s *RegistrationServiceImpl) storeOne(ctx context.Context, id types.Identity, name, prefix string, ts int64, img ImageUpload) (listing.Record, error) {
	recordID := s.newID()
	key := fmt.Sprintf("%s%d_%s.jpg", prefix, ts, recordID)

	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	if err := s.blobs.Put(ctx, key, img.Body, img.Size, contentType); err != nil {
		return listing.Record{}, fmt.Errorf("put %s: %w", key, err)
	}

	url, err := s.blobs.ResolveDownloadAddress(ctx, listing.Ref(key))
	if err != nil {
		return listing.Record{}, fmt.Errorf("resolve %s: %w", key, err)
	}

	rec := listing.Record{
		ID:        recordID,
		OwnerID:   id.UserID,
		Name:      name,
		Timestamp: ts,
		ImageKey:  key,
		ImageURL:  url,
	}
	if err := s.records.PutRecord(ctx, rec); err != nil {
		return listing.Record{}, fmt.Errorf("put record %s: %w", recordID, err)
	}
	return rec, nil
}
