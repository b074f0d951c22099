package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/internal/pkg/payment"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a new subscription row (normally PENDING)
func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

// GetActiveByUserID finds the ACTIVE subscription with the greatest end date
// that has not lapsed yet. A row whose status still says ACTIVE but whose
// end date has passed does not count.
func (r *subscriptionRepository) GetActiveByUserID(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ? AND status = ? AND end_date > ?",
		userID, models.SUBSCRIPTION_ACTIVE, time.Now()).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetPendingByOrderAndUser locates a PENDING subscription by gateway order id,
// scoped to its owner. The user scope is the ownership check: a payment can
// never activate someone else's subscription. An unknown order, someone
// else's order or an already activated one all come back as
// payment.ErrSubscriptionNotFound.
func (r *subscriptionRepository) GetPendingByOrderAndUser(orderID string, userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("order_id = ? AND user_id = ? AND status = ?",
		orderID, userID, models.SUBSCRIPTION_PENDING).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payment.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Activate flips a subscription to ACTIVE with a one month window starting
// now, recording the gateway payment id. The transition is a single UPDATE
// conditioned on PENDING, so only one of two racing verify calls wins; the
// loser sees payment.ErrSubscriptionNotFound. A crash before the UPDATE
// commits leaves the row PENDING and safe to retry.
func (r *subscriptionRepository) Activate(id uint, paymentID string) (*models.Subscription, error) {
	now := time.Now()
	end := now.AddDate(0, 1, 0)

	tx := r.db.Model(&models.Subscription{}).
		Where("id = ? AND status = ?", id, models.SUBSCRIPTION_PENDING).
		Updates(map[string]interface{}{
			"status":     models.SUBSCRIPTION_ACTIVE,
			"start_date": now,
			"end_date":   end,
			"payment_id": paymentID,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, payment.ErrSubscriptionNotFound
	}

	var sub models.Subscription
	if err := r.db.First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
