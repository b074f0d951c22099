package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/inkwell-app/inkwell/app/repository"
	"github.com/inkwell-app/inkwell/internal/pkg/identity"
	"github.com/inkwell-app/inkwell/internal/pkg/premium"
)

type updateProfileRequest struct {
	Name string `json:"name"`
}

// HandleUserProfile returns the caller's account, credit balance and
// subscription state in one payload.
func HandleUserProfile(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(id.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	resp := fiber.Map{
		"user":         toPublicUser(user),
		"subscription": nil,
	}
	if sub, err := premium.ActiveSubscription(user.ID); err == nil && sub != nil {
		resp["subscription"] = fiber.Map{
			"status":        sub.Status,
			"endDate":       sub.EndDate,
			"daysRemaining": sub.DaysRemaining(),
		}
	}

	return c.JSON(resp)
}

// HandleUserUpdate changes mutable profile fields. Email is identity and
// stays fixed.
func HandleUserUpdate(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(id.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.Name = req.Name
	if err := user.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := repo.Update(user); err != nil {
		log.Printf("profile update failed for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"success": true, "user": toPublicUser(user)})
}

// HandleUserBlogs lists the caller's own posts, drafts included.
func HandleUserBlogs(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	posts, err := repository.GetGlobalFactory().GetBlogRepository().GetByAuthorID(id.UserID)
	if err != nil {
		log.Printf("own posts lookup failed for user %d: %v", id.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load posts"})
	}

	return c.JSON(fiber.Map{"posts": listResponse(posts, id.UserID)})
}
