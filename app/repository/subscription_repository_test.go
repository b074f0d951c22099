package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/internal/pkg/payment"
)

func seedPendingSubscription(t *testing.T, db *gorm.DB, userID uint, orderID string) *models.Subscription {
	t.Helper()
	sub := &models.Subscription{
		UserID:   userID,
		Status:   models.SUBSCRIPTION_PENDING,
		Amount:   10000,
		Currency: "INR",
		OrderID:  orderID,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestActivateTransitionsPendingExactlyOnce(t *testing.T) {
	db := testDB(t)
	repo := NewSubscriptionRepository(db)

	owner := seedUser(t, db, "payer@example.com")
	sub := seedPendingSubscription(t, db, owner.ID, "order_abc")

	activated, err := repo.Activate(sub.ID, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, models.SUBSCRIPTION_ACTIVE, activated.Status)
	require.NotNil(t, activated.StartDate)
	require.NotNil(t, activated.EndDate)
	assert.True(t, activated.EndDate.After(time.Now()))
	assert.True(t, activated.IsActive())

	// The conditional UPDATE matched no PENDING row the second time
	_, err = repo.Activate(sub.ID, "pay_456")
	assert.ErrorIs(t, err, payment.ErrSubscriptionNotFound)

	var got models.Subscription
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.Equal(t, models.SUBSCRIPTION_ACTIVE, got.Status)
	assert.Equal(t, "pay_123", got.PaymentID)
}

func TestGetPendingByOrderAndUserScopedToOwner(t *testing.T) {
	db := testDB(t)
	repo := NewSubscriptionRepository(db)

	owner := seedUser(t, db, "payer@example.com")
	other := seedUser(t, db, "other@example.com")
	seedPendingSubscription(t, db, owner.ID, "order_abc")

	found, err := repo.GetPendingByOrderAndUser("order_abc", owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, found.UserID)

	// A valid order id never resolves against someone else's account
	_, err = repo.GetPendingByOrderAndUser("order_abc", other.ID)
	assert.ErrorIs(t, err, payment.ErrSubscriptionNotFound)

	_, err = repo.GetPendingByOrderAndUser("order_unknown", owner.ID)
	assert.ErrorIs(t, err, payment.ErrSubscriptionNotFound)
}

func TestGetPendingGoneAfterActivation(t *testing.T) {
	db := testDB(t)
	repo := NewSubscriptionRepository(db)

	owner := seedUser(t, db, "payer@example.com")
	sub := seedPendingSubscription(t, db, owner.ID, "order_abc")

	_, err := repo.Activate(sub.ID, "pay_123")
	require.NoError(t, err)

	_, err = repo.GetPendingByOrderAndUser("order_abc", owner.ID)
	assert.ErrorIs(t, err, payment.ErrSubscriptionNotFound)
}

func TestGetActiveByUserIDIgnoresLapsedRows(t *testing.T) {
	db := testDB(t)
	repo := NewSubscriptionRepository(db)

	owner := seedUser(t, db, "payer@example.com")
	start := time.Now().AddDate(0, -2, 0)
	end := time.Now().AddDate(0, -1, 0)
	lapsed := &models.Subscription{
		UserID:    owner.ID,
		Status:    models.SUBSCRIPTION_ACTIVE,
		Amount:    10000,
		Currency:  "INR",
		OrderID:   "order_old",
		StartDate: &start,
		EndDate:   &end,
	}
	require.NoError(t, db.Create(lapsed).Error)

	// Status still reads ACTIVE but the window has passed
	_, err := repo.GetActiveByUserID(owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
