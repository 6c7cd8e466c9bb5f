package listing

import (
	"context"
	"errors"
	"slices"
	"sync"
)

type State int

const (
	StateFolders State = iota
	StateImages
)

func (s State) String() string {
	if s == StateImages {
		return "images"
	}
	return "folders"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrBrowserClosed  = errors.New("browser closed")
	ErrSuperseded     = errors.New("fetch superseded by a newer request")
	ErrUnknownFolder  = errors.New("folder is not in the current listing")
	ErrNoFolderChosen = errors.New("no folder selected")
)

// Source is what a Browser fetches from. *Aggregator satisfies it.
type Source interface {
	ListFolders(ctx context.Context, root Ref) ([]Folder, error)
	ListEntries(ctx context.Context, folder Folder) ([]ViewItem, error)
}

type View struct {
	State    State      `json:"state"`
	Folders  []Folder   `json:"folders"`
	Selected *Folder    `json:"selected,omitempty"`
	Entries  []ViewItem `json:"entries"`
	Loading  bool       `json:"loading"`
	Error    string     `json:"error,omitempty"`
}

// Browser is the folder/image browsing state machine. Every fetch takes a
// generation number; only the fetch holding the latest generation may
// commit, and nothing commits after Close.
type Browser struct {
	src  Source
	root Ref

	mu     sync.Mutex
	gen    uint64
	closed bool
	view   View
}

func NewBrowser(src Source, root Ref) *Browser {
	return &Browser{
		src:  src,
		root: root,
		view: View{State: StateFolders},
	}
}

// Open enters the Folders state and fetches the folder list.
func (b *Browser) Open(ctx context.Context) error {
	return b.fetch(ctx, func(v *View) error {
		v.State = StateFolders
		v.Selected = nil
		v.Entries = nil
		return nil
	})
}

// SelectFolder moves to Images for a folder of the current folder list.
func (b *Browser) SelectFolder(ctx context.Context, name string) error {
	return b.fetch(ctx, func(v *View) error {
		i := slices.IndexFunc(v.Folders, func(f Folder) bool { return f.Name == name })
		if i < 0 {
			return ErrUnknownFolder
		}
		f := v.Folders[i]
		v.State = StateImages
		v.Selected = &f
		v.Entries = nil
		return nil
	})
}

// Back returns to Folders without refetching. Any in-flight entry fetch is
// superseded. In Folders it does nothing, so a pending folder fetch still commits.
func (b *Browser) Back() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrowserClosed
	}
	if b.view.State == StateFolders {
		return nil
	}
	b.gen++
	b.view.State = StateFolders
	b.view.Selected = nil
	b.view.Entries = nil
	b.view.Loading = false
	b.view.Error = ""
	return nil
}

// Refresh re-runs the fetch for the current state.
func (b *Browser) Refresh(ctx context.Context) error {
	return b.fetch(ctx, func(v *View) error {
		if v.State == StateImages && v.Selected == nil {
			return ErrNoFolderChosen
		}
		return nil
	})
}

func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.gen++
}

func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// View returns a copy of the current view model.
func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := b.view
	v.Folders = slices.Clone(b.view.Folders)
	v.Entries = slices.Clone(b.view.Entries)
	if b.view.Selected != nil {
		f := *b.view.Selected
		v.Selected = &f
	}
	return v
}

// fetch applies transition and starts a fetch under one lock so the state
// read for the fetch is the one the transition produced.
func (b *Browser) fetch(ctx context.Context, transition func(*View) error) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBrowserClosed
	}
	if err := transition(&b.view); err != nil {
		b.mu.Unlock()
		return err
	}
	b.gen++
	gen := b.gen
	state := b.view.State
	var folder Folder
	if b.view.Selected != nil {
		folder = *b.view.Selected
	}
	b.view.Loading = true
	b.view.Error = ""
	b.mu.Unlock()

	if state == StateImages {
		entries, err := b.src.ListEntries(ctx, folder)
		return b.commit(gen, err, func(v *View) { v.Entries = entries })
	}

	folders, err := b.src.ListFolders(ctx, b.root)
	return b.commit(gen, err, func(v *View) { v.Folders = folders })
}

func (b *Browser) commit(gen uint64, err error, apply func(*View)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrowserClosed
	}
	if gen != b.gen {
		return ErrSuperseded
	}

	b.view.Loading = false
	if err != nil {
		// last good data stays visible
		b.view.Error = FailureMessage(err)
		return err
	}
	apply(&b.view)
	return nil
}
