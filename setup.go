package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Yulian302/findit-gateway/common/config"
	"github.com/Yulian302/findit-gateway/common/logger"
	"github.com/Yulian302/findit-gateway/healthgrpc"
	"github.com/Yulian302/findit-gateway/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
)

type App struct {
	DynamoDB *dynamodb.Client
	S3       *s3.Client
	Redis    *redis.Client

	Config    config.Config
	AwsConfig aws.Config
	Logger    *slog.Logger

	Services       *Services
	TracerProvider *trace.TracerProvider
}

func SetupApp() (*App, error) {
	cfg := config.LoadConfig()

	if err := cfg.ValidateAllSecrets(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	awsCfg, err := initAWS(*cfg.AWSConfig)
	if err != nil {
		return nil, err
	}

	db := initDynamo(awsCfg)
	if db == nil {
		return nil, errors.New("could not init dynamodb")
	}

	s3Client := initS3(awsCfg, *cfg.S3Config)
	if s3Client == nil {
		return nil, errors.New("could not init s3")
	}

	rdb := initRedis(*cfg.RedisConfig)
	if rdb == nil {
		return nil, errors.New("could not init redis")
	}

	app := &App{
		DynamoDB: db,
		S3:       s3Client,
		Redis:    rdb,

		Config:    cfg,
		AwsConfig: awsCfg,
		Logger:    logger.CreateLogger(cfg.Env),
	}
	slog.SetDefault(app.Logger)

	app.Services = BuildServices(app)

	return app, nil
}

// Run serves HTTP and, when configured, the gRPC health endpoint until ctx
// is cancelled.
func (a *App) Run(ctx context.Context, r *gin.Engine) error {
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              a.Config.GatewayAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		a.Logger.Info("gateway listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if addr := a.Config.GRPCConfig.HealthAddr; addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen grpc health: %w", err)
		}
		hs := healthgrpc.NewServer(a.Services.Health, 15*time.Second, a.Logger)
		g.Go(func() error {
			return hs.Serve(ctx, lis)
		})
	}

	if bc := a.Config.BrowseConfig; bc != nil && bc.SweepInterval > 0 {
		g.Go(func() error {
			return a.Services.Browse.RunSweeper(logging.WithLogger(ctx, a.Logger), bc.SweepInterval, bc.SessionIdleTTL)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func initAWS(cfg config.AWSConfig) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.TODO(),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

func initDynamo(cfg aws.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg)
}

func initS3(awsCfg aws.Config, cfg config.S3Config) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.AccessKey != "" {
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.HOST,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (a *App) Shutdown(ctx context.Context) {
	if a.Services != nil {
		_ = a.Services.Shutdown(ctx)
	}
	if a.TracerProvider != nil {
		_ = a.TracerProvider.Shutdown(ctx)
	}
}
