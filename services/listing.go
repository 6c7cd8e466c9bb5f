package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Yulian302/findit-gateway/auth/types"
	"github.com/Yulian302/findit-gateway/common/config"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/logging"
	"github.com/Yulian302/findit-gateway/metrics"
	"github.com/sony/gobreaker/v2"
)

type ListingService interface {
	ListFolders(ctx context.Context, id types.Identity) ([]listing.Folder, error)
	ListEntries(ctx context.Context, id types.Identity, folder string) ([]listing.ViewItem, error)
	ListDetected(ctx context.Context, id types.Identity) ([]listing.ViewItem, error)
	GroupedObjects(ctx context.Context, id types.Identity) (listing.Groups, error)
	AllRecords(ctx context.Context, orderBy string) ([]listing.Record, error)
	NewBrowser(id types.Identity) *listing.Browser
}

type ListingServiceImpl struct {
	aggregator     *listing.Aggregator
	records        listing.RecordStore
	recordsBreaker *gobreaker.CircuitBreaker[[]listing.Record]
	cfg            config.ListingConfig
}

func NewListingServiceImpl(
	blobs listing.BlobStore,
	records listing.RecordStore,
	recordsBreaker *gobreaker.CircuitBreaker[[]listing.Record],
	cfg config.ListingConfig,
) *ListingServiceImpl {
	return &ListingServiceImpl{
		aggregator: listing.NewAggregator(blobs,
			listing.WithReservedFolder(cfg.ReservedFolder),
			listing.WithResolveConcurrency(cfg.ResolveConcurrency),
		),
		records:        records,
		recordsBreaker: recordsBreaker,
		cfg:            cfg,
	}
}

// UserRoot is the blob prefix every listing of id is confined to.
func UserRoot(prefix string, id types.Identity) listing.Ref {
	return listing.Ref(strings.ReplaceAll(prefix, "{user_id}", id.UserID))
}

func (s *ListingServiceImpl) root(id types.Identity) listing.Ref {
	return UserRoot(s.cfg.RootPrefix, id)
}

func (s *ListingServiceImpl) ListFolders(ctx context.Context, id types.Identity) ([]listing.Folder, error) {
	if id.IsZero() {
		return nil, apperror.ErrAuthRequired
	}

	start := time.Now()
	folders, err := s.aggregator.ListFolders(ctx, s.root(id))
	metrics.RecordListing("folders", time.Since(start), len(folders), err == nil)
	if err != nil {
		logging.FromContext(ctx).Warn("list folders failed", slog.String("user_id", id.UserID), slog.Any("error", err))
		return nil, err
	}
	return folders, nil
}

func (s *ListingServiceImpl) ListEntries(ctx context.Context, id types.Identity, folder string) ([]listing.ViewItem, error) {
	if id.IsZero() {
		return nil, apperror.ErrAuthRequired
	}
	if err := validFolderName(folder); err != nil {
		return nil, err
	}
	if s.aggregator.IsReserved(folder) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrFolderNotFound, folder)
	}

	return s.listEntries(ctx, id, "entries", folder)
}

// ListDetected is the single-list flow over the detected-matches folder.
func (s *ListingServiceImpl) ListDetected(ctx context.Context, id types.Identity) ([]listing.ViewItem, error) {
	if id.IsZero() {
		return nil, apperror.ErrAuthRequired
	}
	return s.listEntries(ctx, id, "detected", s.cfg.DetectedFolder)
}

func (s *ListingServiceImpl) listEntries(ctx context.Context, id types.Identity, op, folder string) ([]listing.ViewItem, error) {
	f := listing.Folder{
		Name: folder,
		Ref:  s.root(id) + listing.Ref(folder+"/"),
	}

	start := time.Now()
	items, err := s.aggregator.ListEntries(ctx, f)
	metrics.RecordListing(op, time.Since(start), len(items), err == nil)
	if err != nil {
		logging.FromContext(ctx).Warn("list entries failed",
			slog.String("user_id", id.UserID),
			slog.String("folder", folder),
			slog.Any("error", err),
		)
		return nil, err
	}
	return items, nil
}

// GroupedObjects groups the caller's records by name. Without an identity
// the result is empty rather than an error.
func (s *ListingServiceImpl) GroupedObjects(ctx context.Context, id types.Identity) (listing.Groups, error) {
	if id.IsZero() {
		logging.FromContext(ctx).Debug("grouped objects requested without identity")
		return listing.Groups{}, nil
	}

	start := time.Now()
	records, err := s.recordsBreaker.Execute(func() ([]listing.Record, error) {
		return s.records.QueryRecordsForUser(ctx, id.UserID)
	})
	if err != nil {
		metrics.RecordListing("grouped", time.Since(start), 0, false)
		logging.FromContext(ctx).Warn("query records failed", slog.String("user_id", id.UserID), slog.Any("error", err))
		return nil, listing.NewFailure("query records", err)
	}

	// stored addresses may be presigned and expired
	records, err = s.aggregator.ResolveRecords(ctx, records)
	if err != nil {
		metrics.RecordListing("grouped", time.Since(start), 0, false)
		logging.FromContext(ctx).Warn("resolve records failed", slog.String("user_id", id.UserID), slog.Any("error", err))
		return nil, err
	}

	groups := listing.GroupByOwnerKey(records)
	metrics.RecordListing("grouped", time.Since(start), len(records), true)
	return groups, nil
}

// AllRecords returns every owner's records. Diagnostic use only.
func (s *ListingServiceImpl) AllRecords(ctx context.Context, orderBy string) ([]listing.Record, error) {
	if orderBy == "" {
		orderBy = "timestamp"
	}
	if orderBy != "timestamp" && orderBy != "name" {
		return nil, fmt.Errorf("%w: cannot order records by %q", apperror.ErrInvalidInput, orderBy)
	}

	start := time.Now()
	records, err := s.recordsBreaker.Execute(func() ([]listing.Record, error) {
		return s.records.QueryAllRecordsOrderedByField(ctx, orderBy)
	})
	if err != nil {
		metrics.RecordListing("all_records", time.Since(start), 0, false)
		return nil, listing.NewFailure("scan records", err)
	}

	records, err = s.aggregator.ResolveRecords(ctx, records)
	metrics.RecordListing("all_records", time.Since(start), len(records), err == nil)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *ListingServiceImpl) NewBrowser(id types.Identity) *listing.Browser {
	return listing.NewBrowser(s.aggregator, s.root(id))
}

func validFolderName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: bad folder name %q", apperror.ErrInvalidInput, name)
	}
	return nil
}
