package types

import "github.com/Yulian302/findit-gateway/listing"

type FoldersResponse struct {
	Folders []listing.Folder `json:"folders"`
}

type EntriesResponse struct {
	Folder  string             `json:"folder"`
	Entries []listing.ViewItem `json:"entries"`
}

type GroupsResponse struct {
	Groups []listing.Group `json:"groups"`
}

type RegisterResponse struct {
	Name      string           `json:"name"`
	Timestamp int64            `json:"timestamp"`
	Records   []listing.Record `json:"records"`
}

type RecordsResponse struct {
	Records []listing.Record `json:"records"`
}
