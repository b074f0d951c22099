package controllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/app/repository"
	"github.com/inkwell-app/inkwell/internal/pkg/identity"
	"github.com/inkwell-app/inkwell/internal/pkg/payment"
	"github.com/inkwell-app/inkwell/internal/pkg/premium"
)

// Monthly subscription price in the currency's smallest unit (paise).
const (
	subscriptionAmount   = 100 * 100
	subscriptionCurrency = "INR"
)

type verifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// HandleSubscriptionCreate opens a payment order at the gateway and stores a
// PENDING subscription carrying the order id. Users with a running
// subscription are turned away instead of being double-charged.
func HandleSubscriptionCreate(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	if !payment.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Payment gateway is not configured"})
	}

	if active, err := repository.GetGlobalFactory().GetSubscriptionRepository().GetActiveByUserID(id.UserID); err == nil && active != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":         "You already have an active subscription",
			"daysRemaining": active.DaysRemaining(),
		})
	}

	receipt := fmt.Sprintf("sub_%s", uuid.New().String()[:18])
	order, err := payment.CreateOrder(subscriptionAmount, subscriptionCurrency, receipt, map[string]string{
		"user_id": fmt.Sprintf("%d", id.UserID),
	})
	if err != nil {
		log.Printf("subscription: order create failed for user %d: %v", id.UserID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to create payment order"})
	}

	sub := &models.Subscription{
		UserID:   id.UserID,
		Status:   models.SUBSCRIPTION_PENDING,
		Amount:   subscriptionAmount,
		Currency: subscriptionCurrency,
		OrderID:  order.ID,
	}
	if err := repository.GetGlobalFactory().GetSubscriptionRepository().Create(sub); err != nil {
		log.Printf("subscription: pending row create failed for order %s: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subscription"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"keyId":    payment.KeyID(),
	})
}

// HandleSubscriptionVerify checks the gateway's payment signature and, when
// it matches, activates the caller's pending subscription for one month.
func HandleSubscriptionVerify(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "orderId, paymentId and signature are required"})
	}

	if err := payment.VerifySignature(req.OrderID, req.PaymentID, req.Signature, payment.KeySecret()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment signature"})
	}

	repo := repository.GetGlobalFactory().GetSubscriptionRepository()
	sub, err := repo.GetPendingByOrderAndUser(req.OrderID, id.UserID)
	if errors.Is(err, payment.ErrSubscriptionNotFound) {
		// No pending row for this order and user. Either the order is
		// unknown, belongs to someone else, or was already activated.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscription not found"})
	}
	if err != nil {
		log.Printf("subscription: pending lookup failed for order %s: %v", req.OrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load subscription"})
	}

	activated, err := repo.Activate(sub.ID, req.PaymentID)
	if errors.Is(err, payment.ErrSubscriptionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscription not found"})
	}
	if err != nil {
		log.Printf("subscription: activate failed for order %s: %v", req.OrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to activate subscription"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Subscription activated successfully",
		"subscription": fiber.Map{
			"status":        activated.Status,
			"startDate":     activated.StartDate,
			"endDate":       activated.EndDate,
			"daysRemaining": activated.DaysRemaining(),
		},
	})
}

// HandleSubscriptionStatus reports whether the caller currently has access.
func HandleSubscriptionStatus(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	sub, err := premium.ActiveSubscription(id.UserID)
	if err != nil {
		log.Printf("subscription: status lookup failed for user %d: %v", id.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load subscription"})
	}
	if sub == nil {
		return c.JSON(fiber.Map{
			"hasActiveSubscription": false,
			"subscription":          nil,
			"credits":               id.Credits,
		})
	}

	return c.JSON(fiber.Map{
		"hasActiveSubscription": true,
		"subscription": fiber.Map{
			"status":        sub.Status,
			"startDate":     sub.StartDate,
			"endDate":       sub.EndDate,
			"daysRemaining": sub.DaysRemaining(),
		},
		"credits": id.Credits,
	})
}
