package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/internal/pkg/shortener"
)

// Reasons reported by RecordView for uncredited outcomes.
const (
	ViewReasonOwnPost       = "own_post"
	ViewReasonAlreadyViewed = "already_viewed"
)

// blogRepository implements the BlogRepository interface
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository instance
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create creates a new blog post in the database. Every post gets a short
// random share slug for stable share URLs.
func (r *blogRepository) Create(post *models.BlogPost) error {
	if post.ShareLink == "" {
		slug, err := shortener.GenerateSecureSlug(10)
		if err != nil {
			return err
		}
		post.ShareLink = slug
	}
	return r.db.Create(post).Error
}

// GetByShareLink resolves a share slug to its post
func (r *blogRepository) GetByShareLink(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Where("share_link = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByID retrieves a blog post with its author
func (r *blogRepository) GetByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPublished retrieves published posts matching the filter plus the total
// count for pagination.
func (r *blogRepository) GetPublished(filter BlogFilter) ([]models.BlogPost, int64, error) {
	query := r.db.Model(&models.BlogPost{}).Where("published = ?", true)

	if filter.Topic != "" {
		query = query.Where("topic = ?", filter.Topic)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ? OR content LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.BlogPost
	err := query.Preload("Author").
		Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&posts).Error
	return posts, total, err
}

// GetFeatured retrieves published posts flagged as featured
func (r *blogRepository) GetFeatured(limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Preload("Author").
		Where("published = ? AND featured = ?", true, true).
		Order("created_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// GetByAuthorID retrieves all posts by one author, drafts included
func (r *blogRepository) GetByAuthorID(authorID uint) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Update updates an existing blog post
func (r *blogRepository) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete soft deletes a blog post by its ID
func (r *blogRepository) Delete(id uint) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}

// Count returns the total number of blog posts
func (r *blogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Count(&count).Error
	return count, err
}

// TotalViews sums the view counters across all posts
func (r *blogRepository) TotalViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.BlogPost{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error
	return total, err
}

// RecordView credits a unique reader view to the author. The duplicate guard
// is the unique index on (post_id, user_id), not a prior existence check:
// a conditional insert is the only pattern that stays correct when identical
// requests race across server instances. The view row, the post counter and
// the author credit commit or roll back together.
func (r *blogRepository) RecordView(postID, readerID, authorID uint) (*ViewResult, error) {
	if readerID == authorID {
		return &ViewResult{Credited: false, Reason: ViewReasonOwnPost}, nil
	}

	result := &ViewResult{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		view := models.BlogView{PostID: postID, UserID: readerID}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&view)
		if insert.Error != nil {
			return insert.Error
		}

		if insert.RowsAffected == 0 {
			// The pair already exists. Expected outcome, not an error.
			result.Reason = ViewReasonAlreadyViewed
			return nil
		}

		if err := tx.Model(&models.BlogPost{}).
			Where("id = ?", postID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", authorID).
			UpdateColumn("credits", gorm.Expr("credits + 1")).Error; err != nil {
			return err
		}

		result.Credited = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetComments retrieves the newest comments for a post
func (r *blogRepository) GetComments(postID uint, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").Limit(limit).
		Find(&comments).Error
	return comments, err
}

// CountComments returns the number of comments on a post
func (r *blogRepository) CountComments(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CreateComment creates a new comment on a post
func (r *blogRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}
