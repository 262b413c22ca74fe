package repository

import (
	"context"
	"testing"

	"kyutaku/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlbumRepository_Delete_KeepsPhotos(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlbumRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	album := &models.Album{UserID: user.ID, Name: "Trip"}
	require.NoError(t, repo.Create(ctx, album))

	for i := 0; i < 2; i++ {
		photo := &models.Photo{UserID: user.ID, ImageURL: "/media/albums/x.jpg"}
		require.NoError(t, repo.CreatePhoto(ctx, photo, album.ID))
		require.NotNil(t, photo.AlbumID)
	}

	require.NoError(t, repo.Delete(ctx, album.ID, user.ID))

	// The album is gone but its photos survive without an album.
	_, err := repo.GetOwned(ctx, album.ID, user.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	photos, err := repo.ListPhotosByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	for _, p := range photos {
		assert.Nil(t, p.AlbumID)
	}
}

func TestAlbumRepository_Delete_NotOwned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlbumRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	album := &models.Album{UserID: alice.ID, Name: "Private"}
	require.NoError(t, repo.Create(ctx, album))

	err := repo.Delete(ctx, album.ID, bob.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	// Still there for the owner.
	_, err = repo.GetOwned(ctx, album.ID, alice.ID)
	assert.NoError(t, err)
}

func TestAlbumRepository_CreatePhoto_SilentAlbumFallback(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlbumRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	bobAlbum := &models.Album{UserID: bob.ID, Name: "Bob's"}
	require.NoError(t, repo.Create(ctx, bobAlbum))

	// Someone else's album: the photo is stored, the reference dropped.
	photo := &models.Photo{UserID: alice.ID, ImageURL: "/media/albums/a.jpg"}
	require.NoError(t, repo.CreatePhoto(ctx, photo, bobAlbum.ID))
	assert.Nil(t, photo.AlbumID)

	// Unknown album: same.
	photo2 := &models.Photo{UserID: alice.ID, ImageURL: "/media/albums/b.jpg"}
	require.NoError(t, repo.CreatePhoto(ctx, photo2, 9999))
	assert.Nil(t, photo2.AlbumID)

	// No album requested at all.
	photo3 := &models.Photo{UserID: alice.ID, ImageURL: "/media/albums/c.jpg"}
	require.NoError(t, repo.CreatePhoto(ctx, photo3, 0))
	assert.Nil(t, photo3.AlbumID)
}

func TestAlbumRepository_DeletePhoto_Ownership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlbumRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	photo := &models.Photo{UserID: alice.ID, ImageURL: "/media/albums/a.jpg"}
	require.NoError(t, repo.CreatePhoto(ctx, photo, 0))

	err := repo.DeletePhoto(ctx, photo.ID, bob.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	assert.NoError(t, repo.DeletePhoto(ctx, photo.ID, alice.ID))
}

func TestAlbumRepository_ListByUser_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlbumRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	for _, name := range []string{"First", "Second"} {
		require.NoError(t, repo.Create(ctx, &models.Album{UserID: alice.ID, Name: name}))
	}
	require.NoError(t, repo.Create(ctx, &models.Album{UserID: bob.ID, Name: "Other"}))

	albums, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, albums, 2)
	for _, a := range albums {
		assert.Equal(t, alice.ID, a.UserID)
	}
}
