// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the skill-exchange platform.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"unique;not null" json:"username"`
	Email        string         `gorm:"unique;not null" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	Bio          string         `json:"bio"`
	PhotoURL     string         `json:"photo_url"`
	Location     string         `gorm:"size:120" json:"location"`
	Availability string         `gorm:"size:120" json:"availability"`
	IsPublic     bool           `gorm:"not null;default:true" json:"is_public"`
	IsBanned     bool           `gorm:"not null;default:false" json:"is_banned"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Skill sets held by reference through join tables.
	OfferedSkills []Skill `gorm:"many2many:user_offered_skills" json:"offered_skills,omitempty"`
	WantedSkills  []Skill `gorm:"many2many:user_wanted_skills" json:"wanted_skills,omitempty"`
}

// OffersSkill reports whether the given skill is in the user's offered set.
// It only consults the loaded association, so callers must preload OfferedSkills.
func (u *User) OffersSkill(skillID uint) bool {
	for _, s := range u.OfferedSkills {
		if s.ID == skillID {
			return true
		}
	}
	return false
}

// PublicProfile returns a copy of the user stripped of private fields.
func (u *User) PublicProfile() User {
	copied := *u
	copied.Password = ""
	copied.Email = ""
	return copied
}
