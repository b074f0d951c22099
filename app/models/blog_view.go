package models

import "time"

// BlogView records that a reader has been credited for a post. The composite
// unique index is the sole duplicate guard; concurrent inserts for the same
// (post, user) pair must collapse to a single row at the storage layer.
type BlogView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:ux_blog_views_post_user,unique,priority:1" json:"post_id"`
	Post      BlogPost  `gorm:"foreignKey:PostID" json:"post,omitempty"`
	UserID    uint      `gorm:"not null;index:ux_blog_views_post_user,unique,priority:2" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
