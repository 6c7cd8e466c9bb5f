// Package listing turns raw listings of a remote hierarchical store into
// ordered, grouped view models: folder lists, timestamp-ordered image
// entries, and name-grouped registration records.
package listing

import (
	"context"
	"strconv"
	"strings"
)

type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Ref addresses a container or an object in the remote store. For S3 it is
// a key prefix (folders, trailing "/") or a full object key (files).
type Ref string

// Entry is one remote file or folder observed in a listing response.
type Entry struct {
	Identifier string
	Kind       Kind
	Ref        Ref
}

func (e Entry) DerivedTimestamp() int64 {
	return ParseTimestamp(e.Identifier)
}

// Listing is the one-level child listing of a container.
type Listing struct {
	Folders []Entry
	Files   []Entry
}

type Folder struct {
	Name string `json:"name"`
	Ref  Ref    `json:"ref"`
}

type ViewItem struct {
	DisplayName string `json:"display_name"`
	ResolvedURL string `json:"resolved_url"`
	Timestamp   int64  `json:"timestamp"`
}

// Record is one registered image of a named object.
type Record struct {
	ID        string `json:"id" dynamodbav:"id"`
	OwnerID   string `json:"owner_id" dynamodbav:"owner_id"`
	Name      string `json:"name" dynamodbav:"name"`
	Timestamp int64  `json:"timestamp" dynamodbav:"timestamp"`
	ImageKey  string `json:"image_key,omitempty" dynamodbav:"image_key,omitempty"`
	ImageURL  string `json:"image_url" dynamodbav:"imageUrl"`
}

type BlobStore interface {
	ListChildren(ctx context.Context, ref Ref) (*Listing, error)
	ResolveDownloadAddress(ctx context.Context, ref Ref) (string, error)
}

type RecordStore interface {
	QueryRecordsForUser(ctx context.Context, userID string) ([]Record, error)
	QueryAllRecordsOrderedByField(ctx context.Context, field string) ([]Record, error)
	PutRecord(ctx context.Context, rec Record) error
}

// ParseTimestamp reads the base-10 integer before the first "_" of name, or
// the whole name when there is no "_". Anything unparsable yields 0.
func ParseTimestamp(name string) int64 {
	prefix, _, _ := strings.Cut(name, "_")
	ts, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}
