package litedb

import (
	"time"

	"gorm.io/gorm"
)

type News struct {
	ID    int       `gorm:"primaryKey"`
	Title string    `gorm:"size:50;not null"`
	Text  string    `gorm:"not null"`
	Date  time.Time `gorm:"not null;index"`
}

func (News) TableName() string { return "news" }

type User struct {
	ID           int    `gorm:"primaryKey"`
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null;default:''"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }

type Comment struct {
	ID       int       `gorm:"primaryKey"`
	NewsID   int       `gorm:"not null;index"`
	News     *News     `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID int       `gorm:"not null;index"`
	Author   *User     `gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"not null"`
	Created  time.Time `gorm:"not null;index"`
}

func (Comment) TableName() string { return "comments" }

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &News{}, &Comment{})
}
