package main

import (
	"context"
	"log/slog"

	"github.com/Yulian302/findit-gateway/common/health"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/services"
	"github.com/Yulian302/findit-gateway/store"
)

type Stores struct {
	blobs   *store.S3BlobStore
	records store.RecordStore
	devices store.DeviceTokenStore
}

type Services struct {
	Listing      services.ListingService
	Registration services.RegistrationService
	Browse       services.BrowseService
	Devices      services.DeviceService

	Health *health.HealthHandler

	Stores *Stores

	logger *slog.Logger
}

type Shutdowner interface {
	Shutdown(context.Context) error
}

func BuildServices(app *App) *Services {
	cfg := app.Config

	blobStore := store.NewS3BlobStore(app.S3, *cfg.S3Config)
	recordStore := store.NewRecordStore(app.DynamoDB, cfg.DynamoDBConfig.RecordsTableName, cfg.DynamoDBConfig.OwnerIndexName)
	deviceStore := store.NewRedisDeviceTokenStore(app.Redis)

	guardedBlobs := services.NewGuardedBlobStore(blobStore, *cfg.BreakerConfig)
	recordsBreaker := services.NewBreaker[[]listing.Record]("dynamodb:query-records", *cfg.BreakerConfig)

	listingSvc := services.NewListingServiceImpl(guardedBlobs, recordStore, recordsBreaker, *cfg.ListingConfig)
	registrationSvc := services.NewRegistrationServiceImpl(guardedBlobs, recordStore, *cfg.ListingConfig, cfg.MaxUploadSize)
	browseSvc := services.NewBrowseServiceImpl(listingSvc)
	deviceSvc := services.NewDeviceServiceImpl(deviceStore)

	return &Services{
		Listing:      listingSvc,
		Registration: registrationSvc,
		Browse:       browseSvc,
		Devices:      deviceSvc,

		Health: health.NewHealthHandler(blobStore, recordStore, deviceStore),

		Stores: &Stores{
			blobs:   blobStore,
			records: recordStore,
			devices: deviceStore,
		},

		logger: app.Logger,
	}
}

func (s *Services) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down services")

	if s.Stores != nil {
		if err := s.Stores.Shutdown(ctx, s.logger); err != nil {
			s.logger.Error("stores shutdown error", slog.Any("error", err))
		}
	}

	s.logger.Info("services shutdown complete")
	return nil
}

func (s *Stores) Shutdown(ctx context.Context, logger *slog.Logger) error {
	shutdownIfPossible := func(name string, v any) {
		if sh, ok := v.(Shutdowner); ok {
			if err := sh.Shutdown(ctx); err != nil {
				logger.Error("store shutdown error", slog.String("store", name), slog.Any("error", err))
			}
		}
	}

	shutdownIfPossible("blobs", s.blobs)
	shutdownIfPossible("records", s.records)
	shutdownIfPossible("devices", s.devices)

	return nil
}
