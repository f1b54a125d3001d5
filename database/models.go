package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AdminUser struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex"`
	PasswordHash []byte
	SessionToken string `gorm:"index;unique"`
	IsAdmin      bool
	Posts        []Post    `gorm:"foreignKey:AdminUserID"`
	Comments     []Comment `gorm:"foreignKey:AdminUserID"`
}

// RawTweet is an ingested source record. Rows are written once by the
// ingestion process and never mutated afterwards.
type RawTweet struct {
	gorm.Model
	Handle    string
	Content   string `gorm:"type:text"`
	PostedAt  time.Time
	FetchedAt time.Time
}

// PendingPost is a moderation draft derived from one RawTweet.
type PendingPost struct {
	gorm.Model
	RawTweetID          uint `gorm:"uniqueIndex"`
	RawTweet            RawTweet
	Status              PendingStatus `gorm:"index;default:pending_review"`
	Category            string        `gorm:"index"`
	ExtractedData       datatypes.JSON
	LowConfidenceFields datatypes.JSON
	AdminNotes          string
	PostID              *uint
}

type Post struct {
	gorm.Model
	AdminUserID  uint `gorm:"index"`
	Title        string
	Slug         string `gorm:"uniqueIndex"`
	Excerpt      string
	Content      datatypes.JSON
	CategoryType string `gorm:"index"`
	Categories   datatypes.JSON
	Published    bool
	Status       PostStatus `gorm:"index;default:draft"`
	BankID       *uint
	Bank         *Bank
}

type Category struct {
	gorm.Model
	Name     string
	Slug     string     `gorm:"uniqueIndex"`
	ParentID *uint      `gorm:"index"`
	Children []Category `gorm:"foreignKey:ParentID"`
}

type Bank struct {
	gorm.Model
	Slug     string `gorm:"uniqueIndex"`
	Name     string
	LogoPath string
}

// CardConfig drives dynamic form rendering for one category of card
// content.
type CardConfig struct {
	gorm.Model
	CategoryType   string `gorm:"uniqueIndex"`
	RequiredFields datatypes.JSON
	Layout         string
	SortOrder      int
	Enabled        bool
}

type Comment struct {
	gorm.Model
	PostID      uint   `gorm:"index"`
	AdminUserID uint   `gorm:"index"`
	Content     string `gorm:"type:text"`
}
