package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Yulian302/findit-gateway/auth/types"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/logging"
	"github.com/Yulian302/findit-gateway/metrics"
)

// BrowseService keeps one folder/image browsing session per user. Listing
// failures do not fail the call: they surface in the returned view's error.
type BrowseService interface {
	Open(ctx context.Context, id types.Identity) (listing.View, error)
	View(id types.Identity) (listing.View, error)
	Select(ctx context.Context, id types.Identity, folder string) (listing.View, error)
	Back(id types.Identity) (listing.View, error)
	Refresh(ctx context.Context, id types.Identity) (listing.View, error)
	Close(id types.Identity) error
	RunSweeper(ctx context.Context, interval, idle time.Duration) error
}

type BrowserFactory interface {
	NewBrowser(id types.Identity) *listing.Browser
}

type browseSession struct {
	browser  *listing.Browser
	lastUsed time.Time
}

type BrowseServiceImpl struct {
	factory BrowserFactory
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*browseSession
}

func NewBrowseServiceImpl(factory BrowserFactory) *BrowseServiceImpl {
	return &BrowseServiceImpl{
		factory:  factory,
		now:      time.Now,
		sessions: make(map[string]*browseSession),
	}
}

// Open starts a fresh session, tearing down any previous one for the user.
func (s *BrowseServiceImpl) Open(ctx context.Context, id types.Identity) (listing.View, error) {
	if id.IsZero() {
		return listing.View{}, apperror.ErrAuthRequired
	}

	b := s.factory.NewBrowser(id)

	s.mu.Lock()
	if old, ok := s.sessions[id.UserID]; ok {
		old.browser.Close()
	}
	s.sessions[id.UserID] = &browseSession{browser: b, lastUsed: s.now()}
	metrics.SetBrowseSessions(len(s.sessions))
	s.mu.Unlock()

	return s.settle(ctx, b, b.Open(ctx))
}

func (s *BrowseServiceImpl) View(id types.Identity) (listing.View, error) {
	b, err := s.session(id)
	if err != nil {
		return listing.View{}, err
	}
	return b.View(), nil
}

func (s *BrowseServiceImpl) Select(ctx context.Context, id types.Identity, folder string) (listing.View, error) {
	b, err := s.session(id)
	if err != nil {
		return listing.View{}, err
	}
	return s.settle(ctx, b, b.SelectFolder(ctx, folder))
}

func (s *BrowseServiceImpl) Back(id types.Identity) (listing.View, error) {
	b, err := s.session(id)
	if err != nil {
		return listing.View{}, err
	}
	return s.settle(context.Background(), b, b.Back())
}

func (s *BrowseServiceImpl) Refresh(ctx context.Context, id types.Identity) (listing.View, error) {
	b, err := s.session(id)
	if err != nil {
		return listing.View{}, err
	}
	return s.settle(ctx, b, b.Refresh(ctx))
}

func (s *BrowseServiceImpl) Close(id types.Identity) error {
	if id.IsZero() {
		return apperror.ErrAuthRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id.UserID]
	if !ok {
		return apperror.ErrSessionNotFound
	}
	sess.browser.Close()
	delete(s.sessions, id.UserID)
	metrics.SetBrowseSessions(len(s.sessions))
	return nil
}

func (s *BrowseServiceImpl) session(id types.Identity) (*listing.Browser, error) {
	if id.IsZero() {
		return nil, apperror.ErrAuthRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id.UserID]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}
	sess.lastUsed = s.now()
	return sess.browser, nil
}

// Sweep closes sessions unused for longer than idle. Sessions with a fetch
// in flight are kept.
func (s *BrowseServiceImpl) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	evicted := 0
	for userID, sess := range s.sessions {
		if sess.lastUsed.After(cutoff) || sess.browser.View().Loading {
			continue
		}
		sess.browser.Close()
		delete(s.sessions, userID)
		evicted++
	}
	if evicted > 0 {
		metrics.SetBrowseSessions(len(s.sessions))
	}
	return evicted
}

// RunSweeper sweeps idle sessions every interval until ctx is done.
func (s *BrowseServiceImpl) RunSweeper(ctx context.Context, interval, idle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(idle); n > 0 {
				logging.FromContext(ctx).Info("evicted idle browse sessions", slog.Int("count", n))
			}
		}
	}
}

// settle maps a browser operation result onto the service contract.
func (s *BrowseServiceImpl) settle(ctx context.Context, b *listing.Browser, err error) (listing.View, error) {
	switch {
	case err == nil, errors.Is(err, listing.ErrSuperseded):
		return b.View(), nil
	case errors.Is(err, listing.ErrBrowserClosed):
		return listing.View{}, apperror.ErrSessionNotFound
	case errors.Is(err, listing.ErrUnknownFolder):
		return listing.View{}, fmt.Errorf("%w: %w", apperror.ErrFolderNotFound, err)
	case errors.Is(err, listing.ErrNoFolderChosen):
		return listing.View{}, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	default:
		logging.FromContext(ctx).Warn("browse fetch failed", slog.Any("error", err))
		return b.View(), nil
	}
}
