package premium

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/app/repository"
)

// HasActiveAccess reports whether the user currently holds a live
// subscription window. The decision is a fresh storage read per call; there
// is no cached or in-process notion of "subscribed".
func HasActiveAccess(userID uint) bool {
	if userID == 0 {
		return false
	}
	sub, err := repository.GetGlobalFactory().GetSubscriptionRepository().GetActiveByUserID(userID)
	if err != nil {
		return false
	}
	return sub.IsActive()
}

// CanReadPost decides whether a reader may see the full body of a post.
// FREE posts are always readable. PAID posts are readable by their author
// and by readers with an active subscription; everyone else gets the gated
// excerpt from the presentation layer.
func CanReadPost(post *models.BlogPost, readerID uint) bool {
	if !post.IsPaid() {
		return true
	}
	if readerID != 0 && readerID == post.AuthorID {
		return true
	}
	return HasActiveAccess(readerID)
}

// ActiveSubscription returns the live subscription for a user, or nil.
func ActiveSubscription(userID uint) (*models.Subscription, error) {
	sub, err := repository.GetGlobalFactory().GetSubscriptionRepository().GetActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}
