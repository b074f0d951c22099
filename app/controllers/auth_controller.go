package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/app/repository"
	"github.com/inkwell-app/inkwell/internal/pkg/cache"
	"github.com/inkwell-app/inkwell/internal/pkg/identity"
	"github.com/inkwell-app/inkwell/internal/pkg/mail"
	"github.com/inkwell-app/inkwell/internal/pkg/session"
	"github.com/inkwell-app/inkwell/internal/pkg/token"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

type resendRequest struct {
	Email string `json:"email"`
}

// publicUser is the response shape for a user; it never carries secrets.
type publicUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Credits  uint   `json:"credits"`
}

func toPublicUser(u *models.User) publicUser {
	return publicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Verified: u.Verified,
		Credits:  u.Credits,
	}
}

// HandleSignup registers a new, unverified user and mails the 6-digit code.
func HandleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email, password and name are required"})
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := repository.GetGlobalFactory().GetUserRepository().Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already in use"})
		}
		log.Printf("signup: create user failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed"})
	}

	// Mail delivery is best-effort; the code can be resent.
	if err := mail.SendVerificationMail(user.Email, user.VerificationCode); err != nil {
		log.Printf("signup: verification mail to %s failed: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully. Please check your email for verification.",
		"userId":  user.ID,
	})
}

// HandleLogin authenticates with email and password and issues the token
// cookie. Unverified users are told to verify instead of being let in.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(req.Email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if !user.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if !user.Verified {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":                "Email not verified",
			"verificationRequired": true,
			"email":                user.Email,
		})
	}

	raw, err := token.Issue(user)
	if err != nil {
		log.Printf("login: token issue failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Authentication failed"})
	}
	token.SetAuthCookie(c, raw)

	if err := identity.EstablishSession(c, user); err != nil {
		log.Printf("login: session establish failed: %v", err)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repository.GetGlobalFactory().GetUserRepository().Update(user); err != nil {
		log.Printf("login: last_login update failed: %v", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    toPublicUser(user),
	})
}

// HandleLogout destroys the server-side session and clears the token cookie.
func HandleLogout(c *fiber.Ctx) error {
	if err := session.Destroy(c); err != nil {
		log.Printf("logout: session destroy failed: %v", err)
	}
	token.ClearAuthCookie(c)

	return c.JSON(fiber.Map{"success": true})
}

// HandleVerify checks the 6-digit code, marks the user verified and logs
// them in with a fresh token cookie.
func HandleVerify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" || req.VerificationCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and verification code are required"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err != nil || !user.IsVerificationCodeValid(req.VerificationCode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid verification code"})
	}

	user.MarkVerified()
	if err := repo.Update(user); err != nil {
		log.Printf("verify: update failed for %s: %v", user.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Verification failed"})
	}

	if err := mail.SendWelcomeMail(user.Email, user.Name); err != nil {
		log.Printf("verify: welcome mail to %s failed: %v", user.Email, err)
	}

	raw, err := token.Issue(user)
	if err != nil {
		log.Printf("verify: token issue failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Verification failed"})
	}
	token.SetAuthCookie(c, raw)

	if err := identity.EstablishSession(c, user); err != nil {
		log.Printf("verify: session establish failed: %v", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email verified successfully",
		"user":    toPublicUser(user),
	})
}

// HandleResendVerification generates a new code and mails it. Rate limited
// per email so the mailer cannot be used as a spam cannon.
func HandleResendVerification(c *fiber.Ctx) error {
	var req resendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.Verified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is already verified"})
	}

	if count, err := cache.Incr("verification:resend:"+user.Email, time.Hour); err == nil && count > 5 {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many verification mails requested, try again later"})
	}

	if err := user.GenerateVerificationCode(); err != nil {
		log.Printf("resend: code generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resend verification code"})
	}
	if err := repo.Update(user); err != nil {
		log.Printf("resend: update failed for %s: %v", user.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resend verification code"})
	}

	if err := mail.SendVerificationMail(user.Email, user.VerificationCode); err != nil {
		log.Printf("resend: verification mail to %s failed: %v", user.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send verification mail"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Verification code resent successfully",
	})
}

// HandleAuthStatus reports the resolved identity, refreshed from storage.
func HandleAuthStatus(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		id = identity.Resolve(c)
	}
	if id == nil {
		return c.JSON(fiber.Map{"isAuthenticated": false, "user": nil})
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(id.UserID)
	if err != nil {
		// User in token not found in database
		return c.JSON(fiber.Map{"isAuthenticated": false, "user": nil})
	}

	return c.JSON(fiber.Map{
		"isAuthenticated": true,
		"user":            toPublicUser(user),
	})
}
