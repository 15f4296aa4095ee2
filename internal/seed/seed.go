package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"travelbuddy/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumBlogs    int
	NumTrips    int
	ShouldClean bool
	MaxDays     int
	SkipBcrypt  bool
}

// Seed populates the database with demo data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d blogs and %d trips...",
		opts.NumUsers, opts.NumBlogs, opts.NumTrips)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	admin, err := ensureAdmin(db, opts)
	if err != nil {
		return fmt.Errorf("failed to ensure admin: %w", err)
	}
	log.Printf("✓ admin account available (%s)", admin.Email)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	blogs, err := createBlogs(f, users, opts.NumBlogs)
	if err != nil {
		return fmt.Errorf("failed to create blogs: %w", err)
	}
	log.Printf("✓ %d blogs created", len(blogs))

	likes, wishes, err := createEngagement(db, rng, users, blogs)
	if err != nil {
		return fmt.Errorf("failed to create likes and wishlists: %w", err)
	}
	log.Printf("✓ %d likes and %d wishlist items created", likes, wishes)

	accepted, err := createBuddies(db, rng, users)
	if err != nil {
		return fmt.Errorf("failed to create buddy requests: %w", err)
	}
	log.Printf("✓ %d buddy relationships created", accepted)

	trips, err := createTrips(f, rng, users, opts.NumTrips)
	if err != nil {
		return fmt.Errorf("failed to create trips: %w", err)
	}
	log.Printf("✓ %d trips created", len(trips))

	reviews, err := createReviews(db, rng, trips)
	if err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}
	log.Printf("✓ %d reviews created", reviews)

	chats, err := createChats(db, rng, users)
	if err != nil {
		return fmt.Errorf("failed to create chats: %w", err)
	}
	log.Printf("✓ %d chats created", chats)

	groups, err := createGroups(db, rng, users)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("✓ %d groups created", groups)

	log.Println("🎉 Database seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Child tables first
	tables := []string{
		"group_posts", "groups", "messages", "chat_members", "chats",
		"buddy_reviews", "trip_reviews", "todo_items", "trip_participants",
		"trips", "buddy_requests", "wishlist_items", "likes", "blogs", "users",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %q", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureAdmin(db *gorm.DB, opts Options) (*models.User, error) {
	const adminEmail = "admin@travelbuddy.com"

	var admin models.User
	err := db.Where("email = ?", adminEmail).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	password := "Admin1234!travel"
	if !opts.SkipBcrypt {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		password = string(hashed)
	}

	admin = models.User{
		Name:     "TravelBuddy Admin",
		Email:    adminEmail,
		Password: password,
		Type:     models.UserTypeAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func createUsers(f *Factory, count int) ([]models.User, error) {
	if count <= 0 {
		count = 20
	}
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		// Roughly a third of the crowd gets premium
		premium := i%3 == 0
		user, err := f.CreateUser(func(u *models.User) {
			u.IsPremium = premium
		})
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func createBlogs(f *Factory, users []models.User, count int) ([]models.Blog, error) {
	if count <= 0 {
		count = 40
	}
	blogs := make([]models.Blog, 0, count)
	for i := 0; i < count; i++ {
		author := users[i%len(users)]
		blog, err := f.CreateBlog(&author)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}
	return blogs, nil
}

func createEngagement(db *gorm.DB, rng *rand.Rand, users []models.User, blogs []models.Blog) (int, int, error) {
	likes, wishes := 0, 0
	for _, user := range users {
		for _, blog := range blogs {
			if blog.AuthorID == user.ID {
				continue
			}
			if rng.Intn(100) < 20 {
				if err := db.Create(&models.Like{UserID: user.ID, BlogID: blog.ID}).Error; err != nil {
					return likes, wishes, err
				}
				likes++
			}
			if rng.Intn(100) < 10 {
				if err := db.Create(&models.WishlistItem{UserID: user.ID, BlogID: blog.ID}).Error; err != nil {
					return likes, wishes, err
				}
				wishes++
			}
		}
	}
	return likes, wishes, nil
}

func createBuddies(db *gorm.DB, rng *rand.Rand, users []models.User) (int, error) {
	accepted := 0
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			if rng.Intn(100) >= 15 {
				continue
			}
			status := models.BuddyRequestStatusPending
			switch rng.Intn(3) {
			case 0, 1:
				status = models.BuddyRequestStatusAccepted
			}
			request := models.BuddyRequest{
				RequesterID: users[i].ID,
				ReceiverID:  users[j].ID,
				Status:      status,
			}
			if err := db.Create(&request).Error; err != nil {
				return accepted, err
			}
			if status == models.BuddyRequestStatusAccepted {
				accepted++
			}
		}
	}
	return accepted, nil
}

func createTrips(f *Factory, rng *rand.Rand, users []models.User, count int) ([]models.Trip, error) {
	if count <= 0 {
		count = 10
	}
	trips := make([]models.Trip, 0, count)
	for i := 0; i < count; i++ {
		creator := users[rng.Intn(len(users))]

		// A third of the seeded trips are already finished so completed-trip
		// and review flows have data to work with
		ended := i%3 == 0
		trip, err := f.CreateTrip(&creator, func(t *models.Trip) {
			if ended {
				t.Status = models.TripStatusEnded
				t.StartDate = time.Now().Add(-30 * 24 * time.Hour)
				t.EndDate = time.Now().Add(-23 * 24 * time.Hour)
			}
		})
		if err != nil {
			return nil, err
		}

		joined := map[uint]bool{creator.ID: true}
		for n := 0; n < 1+rng.Intn(3); n++ {
			candidate := users[rng.Intn(len(users))]
			if joined[candidate.ID] {
				continue
			}
			joined[candidate.ID] = true
			if err := f.AddParticipant(trip, &candidate); err != nil {
				return nil, err
			}
		}

		for n := 0; n < 2+rng.Intn(4); n++ {
			if _, err := f.CreateTodo(trip, &creator); err != nil {
				return nil, err
			}
		}

		trips = append(trips, *trip)
	}
	return trips, nil
}

func createReviews(db *gorm.DB, rng *rand.Rand, trips []models.Trip) (int, error) {
	created := 0
	for _, trip := range trips {
		if trip.Status != models.TripStatusEnded {
			continue
		}
		var participants []models.TripParticipant
		if err := db.Where("trip_id = ?", trip.ID).Find(&participants).Error; err != nil {
			return created, err
		}
		for _, p := range participants {
			review := models.TripReview{
				TripID:     trip.ID,
				ReviewerID: p.UserID,
				Rating:     3 + rng.Intn(3),
				Comment:    gofakeit.Sentence(12),
			}
			if err := db.Create(&review).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createChats(db *gorm.DB, rng *rand.Rand, users []models.User) (int, error) {
	// Pull accepted buddy pairs and give each a direct chat with a few messages
	var pairs []models.BuddyRequest
	if err := db.Where("status = ?", models.BuddyRequestStatusAccepted).Find(&pairs).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, pair := range pairs {
		chat := models.Chat{IsGroup: false}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&chat).Error; err != nil {
				return err
			}
			members := []models.ChatMember{
				{ChatID: chat.ID, UserID: pair.RequesterID},
				{ChatID: chat.ID, UserID: pair.ReceiverID},
			}
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
			for n := 0; n < 2+rng.Intn(6); n++ {
				sender := pair.RequesterID
				if n%2 == 1 {
					sender = pair.ReceiverID
				}
				msg := models.Message{
					ChatID:   chat.ID,
					SenderID: sender,
					Content:  gofakeit.Sentence(8),
				}
				if err := tx.Create(&msg).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func createGroups(db *gorm.DB, rng *rand.Rand, users []models.User) (int, error) {
	groupNames := []string{
		"Solo Backpackers", "Budget Travel Hacks", "Foodies Abroad",
		"Mountain Trekkers", "Island Hoppers", "City Break Crew",
	}

	var premium []models.User
	for _, u := range users {
		if u.IsPremium {
			premium = append(premium, u)
		}
	}
	if len(premium) == 0 {
		return 0, nil
	}

	created := 0
	for _, name := range groupNames {
		creator := premium[rng.Intn(len(premium))]
		group := models.Group{
			Name:        name,
			Description: gofakeit.Sentence(10),
			CreatorID:   creator.ID,
		}
		if err := db.Create(&group).Error; err != nil {
			return created, err
		}
		for n := 0; n < 1+rng.Intn(4); n++ {
			author := premium[rng.Intn(len(premium))]
			post := models.GroupPost{
				GroupID:  group.ID,
				AuthorID: author.ID,
				Title:    gofakeit.Sentence(5),
				Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
				Location: gofakeit.City(),
				PostDate: time.Now().Add(-time.Duration(rng.Intn(90*24)) * time.Hour),
			}
			if err := db.Create(&post).Error; err != nil {
				return created, err
			}
		}
		created++
	}
	return created, nil
}
