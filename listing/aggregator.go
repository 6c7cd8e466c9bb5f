package listing

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

const ReservedFolder = "objects"

type Aggregator struct {
	blobs       BlobStore
	reserved    string
	concurrency int
}

type Option func(*Aggregator)

// WithReservedFolder overrides the folder name hidden from ListFolders.
func WithReservedFolder(name string) Option {
	return func(a *Aggregator) {
		if name != "" {
			a.reserved = name
		}
	}
}

// WithResolveConcurrency caps in-flight address resolutions; n <= 0 means no cap.
func WithResolveConcurrency(n int) Option {
	return func(a *Aggregator) {
		a.concurrency = n
	}
}

func NewAggregator(blobs BlobStore, opts ...Option) *Aggregator {
	a := &Aggregator{
		blobs:    blobs,
		reserved: ReservedFolder,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) ReservedFolder() string {
	return a.reserved
}

func (a *Aggregator) IsReserved(name string) bool {
	return strings.EqualFold(name, a.reserved)
}

func (a *Aggregator) ListFolders(ctx context.Context, root Ref) ([]Folder, error) {
	l, err := a.blobs.ListChildren(ctx, root)
	if err != nil {
		return nil, NewFailure("list folders", err)
	}

	folders := make([]Folder, 0, len(l.Folders))
	for _, f := range l.Folders {
		if a.IsReserved(f.Identifier) {
			continue
		}
		folders = append(folders, Folder{Name: f.Identifier, Ref: f.Ref})
	}

	slices.SortStableFunc(folders, func(x, y Folder) int {
		return strings.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name))
	})

	return folders, nil
}

// ListEntries resolves every file of folder concurrently and returns them
// newest first. Any failure discards the whole result.
func (a *Aggregator) ListEntries(ctx context.Context, folder Folder) ([]ViewItem, error) {
	l, err := a.blobs.ListChildren(ctx, folder.Ref)
	if err != nil {
		return nil, NewFailure("list entries", err)
	}

	items := make([]ViewItem, len(l.Files))

	g, gctx := errgroup.WithContext(ctx)
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, f := range l.Files {
		g.Go(func() error {
			url, err := a.blobs.ResolveDownloadAddress(gctx, f.Ref)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", f.Identifier, err)
			}
			items[i] = ViewItem{
				DisplayName: f.Identifier,
				ResolvedURL: url,
				Timestamp:   f.DerivedTimestamp(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, NewFailure("list entries", err)
	}

	SortNewestFirst(items)
	return items, nil
}

// ResolveRecords replaces the stored address of every record that carries an
// ImageKey with a freshly resolved one. Records without a key keep ImageURL.
// Any failure discards the whole result.
func (a *Aggregator) ResolveRecords(ctx context.Context, records []Record) ([]Record, error) {
	out := slices.Clone(records)

	g, gctx := errgroup.WithContext(ctx)
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i := range out {
		if out[i].ImageKey == "" {
			continue
		}
		g.Go(func() error {
			url, err := a.blobs.ResolveDownloadAddress(gctx, Ref(out[i].ImageKey))
			if err != nil {
				return fmt.Errorf("resolve %s: %w", out[i].ImageKey, err)
			}
			out[i].ImageURL = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, NewFailure("resolve records", err)
	}
	return out, nil
}

// SortNewestFirst orders items by timestamp descending, keeping listing order on ties.
func SortNewestFirst(items []ViewItem) {
	slices.SortStableFunc(items, func(x, y ViewItem) int {
		return cmp.Compare(y.Timestamp, x.Timestamp)
	})
}
