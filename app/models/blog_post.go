package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	POST_TYPE_FREE = "FREE"
	POST_TYPE_PAID = "PAID"
)

const (
	TOPIC_TECHNOLOGY    = "TECHNOLOGY"
	TOPIC_HEALTH        = "HEALTH"
	TOPIC_LIFESTYLE     = "LIFESTYLE"
	TOPIC_EDUCATION     = "EDUCATION"
	TOPIC_ENTERTAINMENT = "ENTERTAINMENT"
)

// ValidTopics lists the accepted blog post topics.
var ValidTopics = []string{
	TOPIC_TECHNOLOGY,
	TOPIC_HEALTH,
	TOPIC_LIFESTYLE,
	TOPIC_EDUCATION,
	TOPIC_ENTERTAINMENT,
}

type BlogPost struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AuthorID   uint           `gorm:"not null;index" json:"author_id"`
	Author     User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title      string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Content    string         `gorm:"type:longtext" json:"content" validate:"required"`
	Excerpt    string         `gorm:"type:text" json:"excerpt"`
	CoverImage string         `gorm:"type:varchar(255);default:null" json:"cover_image,omitempty" validate:"max=255"`
	Topic      string         `gorm:"type:varchar(50);not null;default:'TECHNOLOGY';index" json:"topic" validate:"oneof=TECHNOLOGY HEALTH LIFESTYLE EDUCATION ENTERTAINMENT"`
	Type       string         `gorm:"type:varchar(10);not null;default:'FREE';index" json:"type" validate:"oneof=FREE PAID"`
	ShareLink  string         `gorm:"type:varchar(16);uniqueIndex;default:null" json:"share_link"`
	Published  bool           `gorm:"default:true;index" json:"published"`
	Featured   bool           `gorm:"default:false;index" json:"featured"`
	ViewCount  uint           `gorm:"default:0" json:"view_count"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *BlogPost) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// IsPaid reports whether the post sits behind the premium gate.
func (p *BlogPost) IsPaid() bool {
	return p.Type == POST_TYPE_PAID
}

// DefaultExcerpt falls back to the first 200 characters of the content.
func (p *BlogPost) DefaultExcerpt() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	runes := []rune(p.Content)
	if len(runes) <= 200 {
		return p.Content
	}
	return string(runes[:200])
}
