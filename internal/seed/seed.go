// Package seed populates the database with demo data for local development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password every seeded user gets.
const DemoPassword = "SwapDemo12!@"

// Options controls the shape of the seeded data set.
type Options struct {
	Users       int
	Swaps       int
	CatalogPath string
	// Wipe removes existing rows before seeding.
	Wipe bool
}

// DefaultOptions returns a data set sized for local development.
func DefaultOptions() Options {
	return Options{Users: 15, Swaps: 40, Wipe: true}
}

// Seed populates the database with demo users, a skill directory, and swap
// history in every lifecycle state, including feedback on completed swaps.
func Seed(db *gorm.DB, opts Options) error {
	log.Println("Starting database seeding...")

	if opts.Wipe {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	catalog, err := LoadCatalog(opts.CatalogPath)
	if err != nil {
		return err
	}

	skills, err := createSkills(db, catalog)
	if err != nil {
		return fmt.Errorf("failed to create skills: %w", err)
	}
	log.Printf("Created %d skills", len(skills))

	users, err := createUsers(db, opts.Users, skills)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	swaps, feedbacks, err := createSwaps(db, users, opts.Swaps)
	if err != nil {
		return fmt.Errorf("failed to create swaps: %w", err)
	}
	log.Printf("Created %d swaps and %d feedback entries", swaps, feedbacks)

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")

	// Delete in dependency order so foreign keys are never violated.
	for _, table := range []string{
		"feedbacks", "swap_requests",
		"user_offered_skills", "user_wanted_skills",
		"skills", "users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createSkills(db *gorm.DB, catalog []string) ([]models.Skill, error) {
	skills := make([]models.Skill, 0, len(catalog))
	for _, name := range catalog {
		skill := models.Skill{Name: name, Status: models.SkillStatusApproved}
		if err := db.Where("name = ?", name).FirstOrCreate(&skill).Error; err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	// A couple of pending suggestions so the admin moderation queue is not empty.
	for _, name := range []string{"beatboxing", "origami"} {
		skill := models.Skill{Name: name, Status: models.SkillStatusPending}
		if err := db.Where("name = ?", name).FirstOrCreate(&skill).Error; err != nil {
			return nil, err
		}
	}
	return skills, nil
}

func createUsers(db *gorm.DB, count int, skills []models.Skill) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	faker := gofakeit.New(0)
	r := rand.New(rand.NewSource(42))

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(faker.Gamertag())
		if len(username) < 3 {
			username = username + "swap"
		}
		// Gamertags collide occasionally; a numeric suffix keeps them unique.
		username = fmt.Sprintf("%s%d", username, i)

		user := models.User{
			Username:     username,
			Email:        fmt.Sprintf("%s@example.com", username),
			Password:     string(hashed),
			Bio:          faker.Sentence(12),
			PhotoURL:     fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", uuid.New().String()),
			Location:     faker.City(),
			Availability: faker.RandomString([]string{"weekends", "weekday evenings", "flexible", "mornings"}),
			IsPublic:     r.Float32() < 0.9,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		// Every user offers 1-3 skills and wants 1-3 others.
		offered := pickSkills(r, skills, 1+r.Intn(3))
		if err := db.Model(&user).Association("OfferedSkills").Append(toPointers(offered)...); err != nil {
			return nil, err
		}
		user.OfferedSkills = offered

		wanted := pickSkills(r, skills, 1+r.Intn(3))
		if err := db.Model(&user).Association("WantedSkills").Append(toPointers(wanted)...); err != nil {
			return nil, err
		}

		users = append(users, user)
	}
	return users, nil
}

func createSwaps(db *gorm.DB, users []models.User, count int) (int, int, error) {
	if len(users) < 2 {
		return 0, 0, nil
	}

	faker := gofakeit.New(1)
	r := rand.New(rand.NewSource(7))
	statuses := []models.SwapStatus{
		models.SwapStatusPending, models.SwapStatusPending,
		models.SwapStatusAccepted,
		models.SwapStatusRejected,
		models.SwapStatusCompleted, models.SwapStatusCompleted,
	}

	swaps, feedbacks := 0, 0
	for i := 0; i < count; i++ {
		sender := users[r.Intn(len(users))]
		receiver := users[r.Intn(len(users))]
		if sender.ID == receiver.ID || len(sender.OfferedSkills) == 0 || len(receiver.OfferedSkills) == 0 {
			continue
		}

		swap := models.SwapRequest{
			SenderID:       sender.ID,
			ReceiverID:     receiver.ID,
			OfferedSkillID: sender.OfferedSkills[r.Intn(len(sender.OfferedSkills))].ID,
			WantedSkillID:  receiver.OfferedSkills[r.Intn(len(receiver.OfferedSkills))].ID,
			Message:        faker.Sentence(8),
			Status:         statuses[r.Intn(len(statuses))],
		}
		if err := db.Create(&swap).Error; err != nil {
			return swaps, feedbacks, err
		}
		swaps++

		if swap.Status != models.SwapStatusCompleted {
			continue
		}

		// Most completed swaps get feedback from at least one side.
		for _, authorID := range []uint{sender.ID, receiver.ID} {
			if r.Float32() < 0.3 {
				continue
			}
			feedback := models.Feedback{
				SwapID:   swap.ID,
				AuthorID: authorID,
				Rating:   3 + r.Intn(3),
				Comment:  faker.Sentence(10),
			}
			if err := db.Create(&feedback).Error; err != nil {
				return swaps, feedbacks, err
			}
			feedbacks++
		}
	}
	return swaps, feedbacks, nil
}

func pickSkills(r *rand.Rand, skills []models.Skill, n int) []models.Skill {
	shuffled := make([]models.Skill, len(skills))
	copy(shuffled, skills)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func toPointers(skills []models.Skill) []interface{} {
	out := make([]interface{}, len(skills))
	for i := range skills {
		out[i] = &skills[i]
	}
	return out
}
