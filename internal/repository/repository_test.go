package repository

import (
	"fmt"
	"testing"

	"skillswap/internal/database"
	"skillswap/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testDB opens an in-memory sqlite database with the same GORM configuration
// as production, so error translation behaves the way the repositories expect.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         database.NewGormLogger(),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
		IsPublic: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedSkill(t *testing.T, db *gorm.DB, name string, status models.SkillStatus) *models.Skill {
	t.Helper()
	skill := &models.Skill{Name: name, Status: status}
	require.NoError(t, db.Create(skill).Error)
	return skill
}

var swapSeq int

func seedSwap(t *testing.T, db *gorm.DB, sender, receiver *models.User, status models.SwapStatus) *models.SwapRequest {
	t.Helper()
	swapSeq++
	suffix := fmt.Sprintf("-%d", swapSeq)
	offered := seedSkill(t, db, "offered-"+sender.Username+suffix, models.SkillStatusApproved)
	wanted := seedSkill(t, db, "wanted-"+receiver.Username+suffix, models.SkillStatusApproved)
	swap := &models.SwapRequest{
		SenderID:       sender.ID,
		ReceiverID:     receiver.ID,
		OfferedSkillID: offered.ID,
		WantedSkillID:  wanted.ID,
		Status:         status,
	}
	require.NoError(t, db.Create(swap).Error)
	return swap
}
