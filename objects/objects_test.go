package objects_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Yulian302/findit-gateway/common/config"
	"github.com/Yulian302/findit-gateway/common/test"
	"github.com/Yulian302/findit-gateway/common/test/mocks"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/objects"
	objectstypes "github.com/Yulian302/findit-gateway/objects/types"
	"github.com/Yulian302/findit-gateway/routers"
	"github.com/Yulian302/findit-gateway/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	secret = "test-secret"
	userID = "user-1"
	root   = "users/user-1/"
)

var (
	mockBlobs   *mocks.MockBlobStore
	mockRecords *mocks.MockRecordStore
	r           *gin.Engine
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	mockBlobs = &mocks.MockBlobStore{}
	mockRecords = &mocks.MockRecordStore{}

	listingCfg := config.ListingConfig{
		RootPrefix:     "users/{user_id}/",
		ReservedFolder: "objects",
		DetectedFolder: "detected_matches",
	}
	breakerCfg := config.BreakerConfig{
		MaxRequests:         5,
		Interval:            30 * time.Second,
		Timeout:             10 * time.Second,
		ConsecutiveFailures: 100,
	}

	listingSvc := services.NewListingServiceImpl(
		mockBlobs,
		mockRecords,
		services.NewBreaker[[]listing.Record]("test:records", breakerCfg),
		listingCfg,
	)
	registrationSvc := services.NewRegistrationServiceImpl(mockBlobs, mockRecords, listingCfg, 1<<20)

	h := objects.NewObjectsHandler(listingSvc, registrationSvc, 4<<20)

	r = gin.New()
	routers.RegisterObjectsRoutes(h, secret, r)
	routers.RegisterAdminRoutes(h, secret, []string{"admin-1"}, r)

	os.Exit(m.Run())
}

func reset() {
	mockBlobs.ResetMock()
	mockRecords.ResetMock()
}

func TestListFolders_Success(t *testing.T) {
	reset()

	mockBlobs.On("ListChildren", mock.Anything, listing.Ref(root)).Return(&listing.Listing{
		Folders: []listing.Entry{
			{Identifier: "wallet", Kind: listing.KindFolder, Ref: root + "wallet/"},
			{Identifier: "objects", Kind: listing.KindFolder, Ref: root + "objects/"},
			{Identifier: "bag", Kind: listing.KindFolder, Ref: root + "bag/"},
		},
	}, nil)

	w := test.PerformRequest(r, t, "GET", "/objects/folders", nil, nil, true, secret, userID)
	require.Equal(t, http.StatusOK, w.Code)

	var resp objectstypes.FoldersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Folders, 2)
	assert.Equal(t, "bag", resp.Folders[0].Name)
	assert.Equal(t, "wallet", resp.Folders[1].Name)

	mockBlobs.AssertExpectations(t)
}

func TestListFolders_Unauthenticated(t *testing.T) {
	reset()

	w := test.PerformRequest(r, t, "GET", "/objects/folders", nil, nil, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListFolders_ListingFailure(t *testing.T) {
	reset()

	mockBlobs.On("ListChildren", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	w := test.PerformRequest(r, t, "GET", "/objects/folders", nil, nil, true, secret, userID)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
}

func TestListEntries_Success(t *testing.T) {
	reset()

	prefix := root + "keys/"
	mockBlobs.On("ListChildren", mock.Anything, listing.Ref(prefix)).Return(&listing.Listing{
		Files: []listing.Entry{
			{Identifier: "100_a.jpg", Kind: listing.KindFile, Ref: listing.Ref(prefix + "100_a.jpg")},
			{Identifier: "300_b.jpg", Kind: listing.KindFile, Ref: listing.Ref(prefix + "300_b.jpg")},
		},
	}, nil)
	mockBlobs.On("ResolveDownloadAddress", mock.Anything, mock.Anything).Return("https://cdn.example/x", nil)

	w := test.PerformRequest(r, t, "GET", "/objects/folders/keys/entries", nil, nil, true, secret, userID)
	require.Equal(t, http.StatusOK, w.Code)

	var resp objectstypes.EntriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "keys", resp.Folder)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "300_b.jpg", resp.Entries[0].DisplayName)
	assert.Equal(t, int64(100), resp.Entries[1].Timestamp)
}

func TestListEntries_ReservedFolder(t *testing.T) {
	reset()

	w := test.PerformRequest(r, t, "GET", "/objects/folders/objects/entries", nil, nil, true, secret, userID)
	assert.Equal(t, http.StatusNotFound, w.Code)
	mockBlobs.AssertNotCalled(t, "ListChildren", mock.Anything, mock.Anything)
}

func TestListEntries_ResolveFailure(t *testing.T) {
	reset()

	prefix := root + "keys/"
	mockBlobs.On("ListChildren", mock.Anything, listing.Ref(prefix)).Return(&listing.Listing{
		Files: []listing.Entry{{Identifier: "1_a.jpg", Kind: listing.KindFile, Ref: listing.Ref(prefix + "1_a.jpg")}},
	}, nil)
	mockBlobs.On("ResolveDownloadAddress", mock.Anything, mock.Anything).Return("", errors.New("no such key"))

	w := test.PerformRequest(r, t, "GET", "/objects/folders/keys/entries", nil, nil, true, secret, userID)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "entries")
}

func TestListDetected(t *testing.T) {
	reset()

	mockBlobs.On("ListChildren", mock.Anything, listing.Ref(root+"detected_matches/")).Return(&listing.Listing{}, nil)

	w := test.PerformRequest(r, t, "GET", "/objects/detected", nil, nil, true, secret, userID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"folder":"","entries":[]}`, w.Body.String())
}

func TestGrouped_Anonymous(t *testing.T) {
	reset()

	w := test.PerformRequest(r, t, "GET", "/objects/grouped", nil, nil, false, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"groups":[]}`, w.Body.String())
	mockRecords.AssertNotCalled(t, "QueryRecordsForUser", mock.Anything, mock.Anything)
}

func TestGrouped_Success(t *testing.T) {
	reset()

	mockRecords.On("QueryRecordsForUser", mock.Anything, userID).Return([]listing.Record{
		{Name: "cup", ImageURL: "u1"},
		{Name: "keys", ImageURL: ""},
		{Name: "cup", ImageURL: "u3"},
	}, nil)

	w := test.PerformRequest(r, t, "GET", "/objects/grouped", nil, nil, true, secret, userID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"groups":[{"name":"cup","images":["u1","u3"]},{"name":"keys","images":[]}]}`, w.Body.String())
}

func TestGrouped_InvalidToken(t *testing.T) {
	reset()

	w := test.PerformRequest(r, t, "GET", "/objects/grouped", nil, nil, true, "other-secret", userID)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func multipartBody(t *testing.T, name string, images ...string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if name != "" {
		require.NoError(t, mw.WriteField("name", name))
	}
	for _, img := range images {
		fw, err := mw.CreateFormFile("images", img)
		require.NoError(t, err)
		_, err = fw.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, "Content-Type: " + mw.FormDataContentType()
}

func TestRegister_Success(t *testing.T) {
	reset()

	underCup := mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, root+"objects/cup/") && strings.HasSuffix(key, ".jpg")
	})
	mockBlobs.On("Put", mock.Anything, underCup, mock.Anything, int64(10), mock.Anything).Return(nil)
	mockBlobs.On("ResolveDownloadAddress", mock.Anything, mock.Anything).Return("https://cdn.example/cup.jpg", nil)
	mockRecords.On("PutRecord", mock.Anything, mock.MatchedBy(func(rec listing.Record) bool {
		return rec.OwnerID == userID && rec.Name == "cup" && rec.ImageURL == "https://cdn.example/cup.jpg"
	})).Return(nil)

	body, contentType := multipartBody(t, "cup", "a.jpg", "b.jpg")
	w := test.PerformRequest(r, t, "POST", "/objects", body, []string{contentType}, true, secret, userID)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp objectstypes.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cup", resp.Name)
	assert.Len(t, resp.Records, 2)

	mockBlobs.AssertNumberOfCalls(t, "Put", 2)
	mockRecords.AssertNumberOfCalls(t, "PutRecord", 2)
}

func TestRegister_MissingImages(t *testing.T) {
	reset()

	body, contentType := multipartBody(t, "cup")
	w := test.PerformRequest(r, t, "POST", "/objects", body, []string{contentType}, true, secret, userID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_NotMultipart(t *testing.T) {
	reset()

	w := test.PerformRequest(r, t, "POST", "/objects", strings.NewReader(`{"name":"cup"}`), []string{"Content-Type: application/json"}, true, secret, userID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_Unauthenticated(t *testing.T) {
	reset()

	body, contentType := multipartBody(t, "cup", "a.jpg")
	w := test.PerformRequest(r, t, "POST", "/objects", body, []string{contentType}, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_StorageFailure(t *testing.T) {
	reset()

	mockBlobs.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone"))

	body, contentType := multipartBody(t, "cup", "a.jpg")
	w := test.PerformRequest(r, t, "POST", "/objects", body, []string{contentType}, true, secret, userID)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	mockRecords.AssertNotCalled(t, "PutRecord", mock.Anything, mock.Anything)
}

func TestAllRecords_Admin(t *testing.T) {
	reset()

	mockRecords.On("QueryAllRecordsOrderedByField", mock.Anything, "name").Return([]listing.Record{
		{ID: "r1", OwnerID: "u1", Name: "cup"},
	}, nil)

	w := test.PerformRequest(r, t, "GET", "/admin/records?order_by=name", nil, nil, true, secret, "admin-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"r1"`)

	w = test.PerformRequest(r, t, "GET", "/admin/records?order_by=size", nil, nil, true, secret, "admin-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllRecords_Forbidden(t *testing.T) {
	reset()

	w := test.PerformRequest(r, t, "GET", "/admin/records", nil, nil, true, secret, userID)
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRecords.AssertNotCalled(t, "QueryAllRecordsOrderedByField", mock.Anything, mock.Anything)
}
