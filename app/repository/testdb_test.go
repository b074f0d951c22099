package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell-app/inkwell/app/models"
)

// testDB opens an in-memory SQLite database carrying the same tables and
// unique indexes the migrations create, so conditional inserts and the
// duplicate guards behave like they do against MySQL. A single connection
// keeps every query on the same in-memory database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, ddl := range []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT, email TEXT UNIQUE, password TEXT,
			verified INTEGER DEFAULT 0,
			verification_code TEXT, verification_sent_at DATETIME,
			credits INTEGER DEFAULT 0,
			last_login_at DATETIME,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME
		)`,
		`CREATE TABLE blog_posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			author_id INTEGER NOT NULL,
			title TEXT NOT NULL, content TEXT, excerpt TEXT, cover_image TEXT,
			topic TEXT DEFAULT 'TECHNOLOGY', type TEXT DEFAULT 'FREE',
			share_link TEXT UNIQUE,
			published INTEGER DEFAULT 1, featured INTEGER DEFAULT 0,
			view_count INTEGER DEFAULT 0,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME
		)`,
		`CREATE TABLE blog_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			post_id INTEGER NOT NULL, user_id INTEGER NOT NULL,
			created_at DATETIME
		)`,
		`CREATE UNIQUE INDEX ux_blog_views_post_user ON blog_views (post_id, user_id)`,
		`CREATE TABLE subscriptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			amount INTEGER NOT NULL, currency TEXT NOT NULL DEFAULT 'INR',
			start_date DATETIME, end_date DATETIME,
			order_id TEXT UNIQUE, payment_id TEXT,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME
		)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test Reader", Email: email, Password: "hashed", Verified: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{
		AuthorID:  authorID,
		Title:     "Seeded post",
		Content:   "Body",
		ShareLink: uuid.NewString()[:10],
		Published: true,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
