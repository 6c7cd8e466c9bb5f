package store

import (
	"slices"
	"testing"

	"github.com/Yulian302/findit-gateway/listing"
	"github.com/aws/aws-sdk-go-v2/aws"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPage(t *testing.T) {
	out := &listing.Listing{}
	appendPage(out, "users/u1/",
		[]s3types.CommonPrefix{
			{Prefix: aws.String("users/u1/detected_matches/")},
			{Prefix: aws.String("users/u1/objects/")},
		},
		[]s3types.Object{
			{Key: aws.String("users/u1/")},
			{Key: aws.String("users/u1/1700000000000_cam.jpg")},
		},
	)

	require.Len(t, out.Folders, 2)
	assert.Equal(t, "detected_matches", out.Folders[0].Identifier)
	assert.Equal(t, listing.Ref("users/u1/detected_matches/"), out.Folders[0].Ref)
	assert.Equal(t, listing.KindFolder, out.Folders[1].Kind)

	require.Len(t, out.Files, 1)
	assert.Equal(t, "1700000000000_cam.jpg", out.Files[0].Identifier)
	assert.Equal(t, listing.Ref("users/u1/1700000000000_cam.jpg"), out.Files[0].Ref)
	assert.Equal(t, int64(1700000000000), out.Files[0].DerivedTimestamp())
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://cdn.example.com/users/u1/objects/my%20cup/1_a.jpg",
		publicURL("https://cdn.example.com", "users/u1/objects/my cup/1_a.jpg"),
	)
}

func TestRecordOrder(t *testing.T) {
	records := []listing.Record{
		{ID: "1", Name: "keys", Timestamp: 30},
		{ID: "2", Name: "Cup", Timestamp: 10},
		{ID: "3", Name: "cup", Timestamp: 10},
	}

	byTs, err := recordOrder("timestamp")
	require.NoError(t, err)
	sorted := append([]listing.Record(nil), records...)
	slices.SortStableFunc(sorted, byTs)
	assert.Equal(t, []string{"2", "3", "1"}, ids(sorted))

	byName, err := recordOrder("name")
	require.NoError(t, err)
	sorted = append([]listing.Record(nil), records...)
	slices.SortStableFunc(sorted, byName)
	assert.Equal(t, []string{"2", "3", "1"}, ids(sorted))

	_, err = recordOrder("imageUrl")
	assert.Error(t, err)
}

func TestSortRecordsByTimestamp_Stable(t *testing.T) {
	records := []listing.Record{
		{ID: "b", Timestamp: 5},
		{ID: "a", Timestamp: 1},
		{ID: "c", Timestamp: 5},
	}
	sortRecordsByTimestamp(records)
	assert.Equal(t, []string{"a", "b", "c"}, ids(records))
}

func ids(records []listing.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
