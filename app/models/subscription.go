package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	SUBSCRIPTION_PENDING = "PENDING"
	SUBSCRIPTION_ACTIVE  = "ACTIVE"
)

// Subscription is one paid access window. Rows start PENDING when an order
// is created at the gateway and flip to ACTIVE only after the payment
// signature has been verified. Expiry is evaluated lazily via IsActive;
// nothing sweeps old rows to an expired state.
type Subscription struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    string         `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Amount    uint           `gorm:"not null" json:"amount"`
	Currency  string         `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	StartDate *time.Time     `gorm:"type:timestamp;default:null" json:"start_date,omitempty"`
	EndDate   *time.Time     `gorm:"type:timestamp;default:null;index" json:"end_date,omitempty"`
	OrderID   string         `gorm:"type:varchar(191);uniqueIndex" json:"order_id"`
	PaymentID string         `gorm:"type:varchar(191);default:null" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsActive reports whether the subscription grants access right now.
func (s *Subscription) IsActive() bool {
	return s.Status == SUBSCRIPTION_ACTIVE && s.EndDate != nil && s.EndDate.After(time.Now())
}

// DaysRemaining returns the whole days left in the access window, 0 when inactive.
func (s *Subscription) DaysRemaining() int {
	if !s.IsActive() {
		return 0
	}
	return int(math.Ceil(time.Until(*s.EndDate).Hours() / 24))
}
