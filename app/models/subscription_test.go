package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionIsActive(t *testing.T) {
	future := time.Now().Add(10 * 24 * time.Hour)
	past := time.Now().Add(-1 * time.Hour)

	tests := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{name: "active with future end", sub: Subscription{Status: SUBSCRIPTION_ACTIVE, EndDate: &future}, want: true},
		{name: "active but ended", sub: Subscription{Status: SUBSCRIPTION_ACTIVE, EndDate: &past}, want: false},
		{name: "active without end date", sub: Subscription{Status: SUBSCRIPTION_ACTIVE}, want: false},
		{name: "pending with future end", sub: Subscription{Status: SUBSCRIPTION_PENDING, EndDate: &future}, want: false},
		{name: "pending", sub: Subscription{Status: SUBSCRIPTION_PENDING}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.IsActive())
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	end := time.Now().Add(10*24*time.Hour + 30*time.Minute)
	sub := Subscription{Status: SUBSCRIPTION_ACTIVE, EndDate: &end}

	// Partial days round up
	assert.Equal(t, 11, sub.DaysRemaining())
}

func TestDaysRemainingInactive(t *testing.T) {
	past := time.Now().Add(-time.Hour)

	assert.Equal(t, 0, (&Subscription{Status: SUBSCRIPTION_PENDING}).DaysRemaining())
	assert.Equal(t, 0, (&Subscription{Status: SUBSCRIPTION_ACTIVE, EndDate: &past}).DaysRemaining())
}
