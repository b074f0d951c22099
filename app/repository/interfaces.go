package repository

import (
	"gorm.io/gorm"

	"github.com/inkwell-app/inkwell/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// BlogFilter narrows List queries; zero values mean "no filter".
type BlogFilter struct {
	Topic  string
	Type   string
	Search string
	Offset int
	Limit  int
}

// ViewResult is the outcome of a view-credit attempt. Credited is true only
// when the view row, the post counter and the author credit all committed.
type ViewResult struct {
	Credited bool
	Reason   string
}

// BlogRepository defines the interface for blog post database operations
type BlogRepository interface {
	Create(post *models.BlogPost) error
	GetByID(id uint) (*models.BlogPost, error)
	GetByShareLink(slug string) (*models.BlogPost, error)
	GetPublished(filter BlogFilter) ([]models.BlogPost, int64, error)
	GetFeatured(limit int) ([]models.BlogPost, error)
	GetByAuthorID(authorID uint) ([]models.BlogPost, error)
	Update(post *models.BlogPost) error
	Delete(id uint) error
	Count() (int64, error)
	TotalViews() (int64, error)

	RecordView(postID, readerID, authorID uint) (*ViewResult, error)

	GetComments(postID uint, limit int) ([]models.Comment, error)
	CountComments(postID uint) (int64, error)
	CreateComment(comment *models.Comment) error
}

// SubscriptionRepository defines the interface for subscription operations
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetActiveByUserID(userID uint) (*models.Subscription, error)
	GetPendingByOrderAndUser(orderID string, userID uint) (*models.Subscription, error)
	Activate(id uint, paymentID string) (*models.Subscription, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Blog         BlogRepository
	Subscription SubscriptionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Blog:         NewBlogRepository(db),
		Subscription: NewSubscriptionRepository(db),
	}
}
