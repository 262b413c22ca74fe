// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"kyutaku/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	albums, err := createAlbums(db, users)
	if err != nil {
		return fmt.Errorf("failed to create albums: %w", err)
	}
	log.Printf("✓ %d albums created", len(albums))

	if err := createPhotos(db, albums); err != nil {
		return fmt.Errorf("failed to create photos: %w", err)
	}

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create likes and comments: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, photos, albums, profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// Always include some specific users for consistency if cleaning
	if count >= 2 {
		for _, u := range []string{"alice", "bob"} {
			user := models.User{
				Username: u,
				Password: string(hashedPassword),
			}
			if err := db.Create(&user).Error; err == nil {
				createProfile(db, &user)
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), i))

		user := models.User{
			Username: username,
			Password: string(hashedPassword),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", username, err)
			continue
		}
		createProfile(db, &user)
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createProfile(db *gorm.DB, user *models.User) {
	age := gofakeit.Number(18, 80)
	profile := models.Profile{
		UserID:     user.ID,
		FullName:   gofakeit.Name(),
		Age:        &age,
		Birthday:   gofakeit.Date().Format("2006-01-02"),
		Gender:     gofakeit.Gender(),
		Location:   fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		Favorites:  strings.Join([]string{gofakeit.Hobby(), gofakeit.Hobby(), gofakeit.Hobby()}, ", "),
		LifeStatus: gofakeit.JobTitle(),
		Bio:        gofakeit.Quote(),
		ImageURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", user.Username),
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Printf("Failed to create profile for %s: %v", user.Username, err)
	}
}

func createAlbums(db *gorm.DB, users []models.User) ([]models.Album, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	albums := make([]models.Album, 0, len(users))

	for _, user := range users {
		for i := 0; i < r.Intn(3); i++ {
			album := models.Album{
				UserID: user.ID,
				Name:   fmt.Sprintf("%s %d", gofakeit.HipsterWord(), gofakeit.Year()),
			}
			if err := db.Create(&album).Error; err != nil {
				return nil, err
			}
			albums = append(albums, album)
		}
	}
	return albums, nil
}

func createPhotos(db *gorm.DB, albums []models.Album) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := range albums {
		album := &albums[i]
		for j := 0; j < r.Intn(6); j++ {
			seed := gofakeit.UUID()
			photo := models.Photo{
				UserID:   album.UserID,
				AlbumID:  &album.ID,
				ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", seed),
				ThumbURL: fmt.Sprintf("https://picsum.photos/seed/%s/256/256", seed),
			}
			if err := db.Create(&photo).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]

		var imageURL string
		if r.Float32() < 0.4 {
			imageURL = fmt.Sprintf("https://picsum.photos/seed/%d/800/800", r.Intn(10000))
		}

		post := models.Post{
			UserID:    user.ID,
			Content:   gofakeit.Paragraph(1, r.Intn(4)+1, 8, " "),
			ImageURL:  imageURL,
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

func createEngagement(db *gorm.DB, users []models.User, posts []models.Post) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, post := range posts {
		for _, user := range users {
			if r.Float32() < 0.15 {
				like := models.Like{UserID: user.ID, PostID: post.ID}
				if err := db.Create(&like).Error; err != nil {
					return err
				}
			}
		}

		for i := 0; i < r.Intn(4); i++ {
			comment := models.Comment{
				PostID: post.ID,
				UserID: users[r.Intn(len(users))].ID,
				Text:   gofakeit.Sentence(r.Intn(10) + 3),
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
