package server

import (
	"fmt"
	"net/http"
	"testing"

	"kyutaku/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAlbum(t *testing.T) {
	db := setupTestDB(t)
	s, app := newTestServer(t, db, nil)
	alice := createTestUser(t, db, "alice")
	token := tokenFor(t, s, alice)

	t.Run("success", func(t *testing.T) {
		resp, err := app.Test(formRequest("/api/albums/create",
			map[string]string{"name": "Trip"}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Trip", body["album"].(map[string]any)["name"])
	})

	t.Run("blank name rejected", func(t *testing.T) {
		resp, err := app.Test(formRequest("/api/albums/create",
			map[string]string{"name": "  "}, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestUploadPhoto(t *testing.T) {
	db := setupTestDB(t)
	s, app := newTestServer(t, db, nil)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	aliceToken := tokenFor(t, s, alice)

	resp, err := app.Test(formRequest("/api/albums/create",
		map[string]string{"name": "Trip"}, aliceToken))
	require.NoError(t, err)
	albumID := fmt.Sprintf("%v", decodeBody(t, resp)["album"].(map[string]any)["id"])

	t.Run("into own album", func(t *testing.T) {
		resp, err := app.Test(multipartRequest(t, "/api/albums/upload",
			map[string]string{"album_id": albumID}, testPNG(t), aliceToken))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		photo := decodeBody(t, resp)["photo"].(map[string]any)
		assert.Equal(t, albumID, fmt.Sprintf("%v", photo["album"]))
		assert.Contains(t, photo["image_url"], "/media/albums/")
		assert.NotEmpty(t, photo["thumb_url"])
	})

	t.Run("foreign album falls back to unfiled", func(t *testing.T) {
		// Bob names alice's album; the photo is still stored, just unattached.
		resp, err := app.Test(multipartRequest(t, "/api/albums/upload",
			map[string]string{"album_id": albumID}, testPNG(t), tokenFor(t, s, bob)))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Nil(t, decodeBody(t, resp)["photo"].(map[string]any)["album"])
	})

	t.Run("missing image rejected", func(t *testing.T) {
		resp, err := app.Test(formRequest("/api/albums/upload",
			map[string]string{"album_id": albumID}, aliceToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

// TestAlbumScenario covers the album lifecycle: create, fill, delete. The
// photos must outlive the album as unfiled entries.
func TestAlbumScenario(t *testing.T) {
	db := setupTestDB(t)
	s, app := newTestServer(t, db, nil)
	alice := createTestUser(t, db, "alice")
	token := tokenFor(t, s, alice)

	resp, err := app.Test(formRequest("/api/albums/create",
		map[string]string{"name": "Trip"}, token))
	require.NoError(t, err)
	albumID := fmt.Sprintf("%v", decodeBody(t, resp)["album"].(map[string]any)["id"])

	resp, err = app.Test(multipartRequest(t, "/api/albums/upload",
		map[string]string{"album_id": albumID}, testPNG(t), token))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(formRequest("/api/albums/delete",
		map[string]string{"album_id": albumID}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(getRequest("/api/albums/list", token))
	require.NoError(t, err)
	assert.Empty(t, decodeBody(t, resp)["albums"])

	resp, err = app.Test(getRequest("/api/albums/photos", token))
	require.NoError(t, err)
	photos := decodeBody(t, resp)["photos"].([]any)
	require.Len(t, photos, 1)
	assert.Nil(t, photos[0].(map[string]any)["album"])
}

func TestDeleteAlbum_NotOwned(t *testing.T) {
	db := setupTestDB(t)
	s, app := newTestServer(t, db, nil)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	resp, err := app.Test(formRequest("/api/albums/create",
		map[string]string{"name": "Private"}, tokenFor(t, s, alice)))
	require.NoError(t, err)
	albumID := fmt.Sprintf("%v", decodeBody(t, resp)["album"].(map[string]any)["id"])

	resp, err = app.Test(formRequest("/api/albums/delete",
		map[string]string{"album_id": albumID}, tokenFor(t, s, bob)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	var count int64
	require.NoError(t, db.Model(&models.Album{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeletePhoto(t *testing.T) {
	db := setupTestDB(t)
	s, app := newTestServer(t, db, nil)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	aliceToken := tokenFor(t, s, alice)

	resp, err := app.Test(multipartRequest(t, "/api/albums/upload",
		map[string]string{}, testPNG(t), aliceToken))
	require.NoError(t, err)
	photoID := fmt.Sprintf("%v", decodeBody(t, resp)["photo"].(map[string]any)["id"])

	t.Run("not owned", func(t *testing.T) {
		resp, err := app.Test(formRequest("/api/albums/delete-photo",
			map[string]string{"photo_id": photoID}, tokenFor(t, s, bob)))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp, err := app.Test(formRequest("/api/albums/delete-photo",
			map[string]string{"photo_id": photoID}, aliceToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		var count int64
		require.NoError(t, db.Model(&models.Photo{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}
