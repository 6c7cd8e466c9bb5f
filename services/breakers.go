package services

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/Yulian302/findit-gateway/common/config"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/store"
	"github.com/sony/gobreaker/v2"
)

func NewBreaker[T any](name string, cfg config.BreakerConfig) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name: name,

		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},

		// sibling calls cancelled by a failed fan-out are not backend failures
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s → %s", name, from, to)
		},
	})
}

// guardedBlobStore runs every remote call through a circuit breaker.
type guardedBlobStore struct {
	blobs   store.BlobStore
	list    *gobreaker.CircuitBreaker[*listing.Listing]
	resolve *gobreaker.CircuitBreaker[string]
	put     *gobreaker.CircuitBreaker[struct{}]
}

func NewGuardedBlobStore(blobs store.BlobStore, cfg config.BreakerConfig) store.BlobStore {
	return &guardedBlobStore{
		blobs:   blobs,
		list:    NewBreaker[*listing.Listing]("s3:list", cfg),
		resolve: NewBreaker[string]("s3:resolve", cfg),
		put:     NewBreaker[struct{}]("s3:put", cfg),
	}
}

func (g *guardedBlobStore) ListChildren(ctx context.Context, ref listing.Ref) (*listing.Listing, error) {
	return g.list.Execute(func() (*listing.Listing, error) {
		return g.blobs.ListChildren(ctx, ref)
	})
}

func (g *guardedBlobStore) ResolveDownloadAddress(ctx context.Context, ref listing.Ref) (string, error) {
	return g.resolve.Execute(func() (string, error) {
		return g.blobs.ResolveDownloadAddress(ctx, ref)
	})
}

func (g *guardedBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := g.put.Execute(func() (struct{}, error) {
		return struct{}{}, g.blobs.Put(ctx, key, body, size, contentType)
	})
	return err
}

func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
