// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"travelbuddy/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var sampleInterests = []string{
	"Adventure", "Photography", "Culture", "Food", "Hiking",
	"Beaches", "History", "Nightlife", "Wildlife", "Road Trips",
	"Backpacking", "Scuba Diving", "Skiing", "Museums", "Camping",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(seed))}
}

// randomInterests picks a comma-joined subset of the interest pool.
func (f *Factory) randomInterests() string {
	count := 2 + f.rng.Intn(4)
	picked := make([]string, 0, count)
	seen := map[int]bool{}
	for len(picked) < count {
		idx := f.rng.Intn(len(sampleInterests))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		picked = append(picked, sampleInterests[idx])
	}
	return strings.Join(picked, ", ")
}

// pastTime returns a timestamp spread over the last opts.MaxDays days.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		Type:      models.UserTypeCustomer,
		Bio:       gofakeit.Sentence(10),
		Location:  gofakeit.City(),
		Phone:     gofakeit.Phone(),
		Interests: f.randomInterests(),
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "Password123!!"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123!!"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateBlog constructs and persists a sample `models.Blog` for the given author.
func (f *Factory) CreateBlog(author *models.User, overrides ...func(*models.Blog)) (*models.Blog, error) {
	city := gofakeit.City()
	country := gofakeit.Country()
	content := gofakeit.Paragraph(3, 5, 12, "\n\n")

	blog := &models.Blog{
		Title:    fmt.Sprintf("%s days in %s", gofakeit.AdjectiveDescriptive(), city),
		Content:  content,
		Preview:  gofakeit.Sentence(18),
		Location: fmt.Sprintf("%s, %s", city, country),
		Tags:     f.randomInterests(),
		Images:   fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		AuthorID: author.ID,
	}
	blog.CreatedAt = f.pastTime()

	for _, override := range overrides {
		override(blog)
	}

	if err := f.db.Create(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// CreateTrip constructs and persists a sample `models.Trip` with the creator
// on the roster.
func (f *Factory) CreateTrip(creator *models.User, overrides ...func(*models.Trip)) (*models.Trip, error) {
	start := time.Now().Add(time.Duration(7+f.rng.Intn(60)) * 24 * time.Hour)
	trip := &models.Trip{
		Destination:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		Description:     gofakeit.Sentence(15),
		StartDate:       start,
		EndDate:         start.Add(time.Duration(3+f.rng.Intn(11)) * 24 * time.Hour),
		Budget:          float64(500 + f.rng.Intn(4500)),
		IsPublic:        true,
		MaxParticipants: models.TripMinParticipants + f.rng.Intn(models.TripMaxParticipants-models.TripMinParticipants),
		Status:          models.TripStatusOpen,
		CreatorID:       creator.ID,
	}

	for _, override := range overrides {
		override(trip)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		return tx.Create(&models.TripParticipant{
			TripID: trip.ID,
			UserID: creator.ID,
			Role:   models.RoleCreator,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// AddParticipant puts a user on a trip roster with the PARTICIPANT role.
func (f *Factory) AddParticipant(trip *models.Trip, user *models.User) error {
	return f.db.Create(&models.TripParticipant{
		TripID: trip.ID,
		UserID: user.ID,
		Role:   models.RoleParticipant,
	}).Error
}

// CreateTodo adds a todo item to a trip.
func (f *Factory) CreateTodo(trip *models.Trip, creator *models.User) (*models.TodoItem, error) {
	todo := &models.TodoItem{
		TripID:    trip.ID,
		Text:      gofakeit.Sentence(6),
		Completed: f.rng.Intn(2) == 0,
		CreatedBy: creator.ID,
	}
	if err := f.db.Create(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}
