package controllers

import (
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/app/repository"
	"github.com/inkwell-app/inkwell/internal/pkg/constants"
	"github.com/inkwell-app/inkwell/internal/pkg/env"
	"github.com/inkwell-app/inkwell/internal/pkg/hcaptcha"
	"github.com/inkwell-app/inkwell/internal/pkg/identity"
	"github.com/inkwell-app/inkwell/internal/pkg/mail"
	"github.com/inkwell-app/inkwell/internal/pkg/premium"
	"github.com/inkwell-app/inkwell/internal/pkg/statistics"
	"github.com/inkwell-app/inkwell/internal/pkg/token"
	"github.com/inkwell-app/inkwell/internal/pkg/utils"
)

// pageData assembles the values every template expects.
func pageData(c *fiber.Ctx, title string, extra fiber.Map) fiber.Map {
	data := fiber.Map{
		"Title":      title,
		"Flash":      flash.Get(c),
		"Identity":   identity.FromCtx(c),
		"IsLoggedIn": identity.IsLoggedIn(c),
	}
	if tok, ok := c.Locals("csrf").(string); ok {
		data["CSRFToken"] = tok
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// HandleHome renders the landing page with featured posts and site numbers.
func HandleHome(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()
	stats := statistics.GetStatistics()

	posts, err := repository.GetGlobalFactory().GetBlogRepository().GetFeatured(6)
	if err != nil {
		log.Printf("home: featured posts failed: %v", err)
	}

	return c.Render("index", pageData(c, "Inkwell", fiber.Map{
		"Featured":   posts,
		"TotalUsers": stats.TotalUsers,
		"TotalPosts": stats.TotalPosts,
		"TotalViews": stats.TotalViews,
	}), "layouts/main")
}

// HandleBlogsPage renders the public post listing.
func HandleBlogsPage(c *fiber.Ctx) error {
	limit := 12
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	filter := repository.BlogFilter{
		Topic:  c.Query("topic"),
		Search: c.Query("search"),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	posts, total, err := repository.GetGlobalFactory().GetBlogRepository().GetPublished(filter)
	if err != nil {
		log.Printf("blogs page: list failed: %v", err)
	}

	return c.Render("blogs/index", pageData(c, "Blogs", fiber.Map{
		"Posts":  posts,
		"Total":  total,
		"Page":   page,
		"Topics": models.ValidTopics,
		"Topic":  filter.Topic,
		"Search": filter.Search,
	}), "layouts/main")
}

// HandleBlogDetailPage renders one post. Paid content shows the excerpt and
// an upgrade prompt unless the reader is entitled to the full text.
func HandleBlogDetailPage(c *fiber.Ctx) error {
	id := postIDParam(c)
	if id == 0 {
		return c.Status(fiber.StatusNotFound).Render("errors/404", pageData(c, "Not found", nil), "layouts/main")
	}

	repo := repository.GetGlobalFactory().GetBlogRepository()
	post, err := repo.GetByID(id)
	if err != nil || (!post.Published && post.AuthorID != identity.UserID(c)) {
		return c.Status(fiber.StatusNotFound).Render("errors/404", pageData(c, "Not found", nil), "layouts/main")
	}

	readerID := identity.UserID(c)
	locked := !premium.CanReadPost(post, readerID)
	content := post.Content
	if locked {
		content = post.DefaultExcerpt()
	}
	// Already-sanitized editor HTML; mark it safe for the template engine
	rendered := template.HTML(utils.ProcessHTMLContent(content))

	// Reading the page is what counts as a view
	if readerID != 0 && !locked {
		if _, err := repo.RecordView(post.ID, readerID, post.AuthorID); err != nil {
			log.Printf("blog page: record view failed for post %d: %v", post.ID, err)
		}
	}

	comments, err := repo.GetComments(post.ID, 50)
	if err != nil {
		log.Printf("blog page: comments failed for post %d: %v", post.ID, err)
	}

	return c.Render("blogs/show", pageData(c, post.Title, fiber.Map{
		"Post":      post,
		"Content":   rendered,
		"Locked":    locked,
		"Comments":  comments,
		"AuthorPic": utils.GetGravatarURL(post.Author.Email, 80),
		"ShareURL":  constants.ShareRoute + "/" + post.ShareLink,
	}), "layouts/main")
}

// HandleShareLink resolves a short share URL to the post page.
func HandleShareLink(c *fiber.Ctx) error {
	post, err := repository.GetGlobalFactory().GetBlogRepository().GetByShareLink(c.Params("sharelink"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", pageData(c, "Not found", nil), "layouts/main")
	}
	return c.Redirect(fmt.Sprintf("/blogs/%d", post.ID), fiber.StatusMovedPermanently)
}

// HandleLoginPage renders the login form and processes its submission.
func HandleLoginPage(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("auth/login", pageData(c, "Login", nil), "layouts/main")
	}

	fm := fiber.Map{"type": "error"}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(c.FormValue("email"))
	if err != nil || !user.CheckPassword(c.FormValue("password")) {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if !user.Verified {
		fm["message"] = "Please verify your email address first"

		return flash.WithError(c, fm).Redirect("/verify-email?email=" + user.Email)
	}

	raw, err := token.Issue(user)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}
	token.SetAuthCookie(c, raw)

	if err := identity.EstablishSession(c, user); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = repository.GetGlobalFactory().GetUserRepository().Update(user)

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome back!",
	}

	return flash.WithSuccess(c, fm).Redirect("/dashboard")
}

// HandleSignupPage renders the signup form and processes its submission.
// The form carries an hCaptcha response that must verify.
func HandleSignupPage(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("auth/signup", pageData(c, "Sign up", fiber.Map{
			"HCaptchaSiteKey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
		}), "layouts/main")
	}

	fm := fiber.Map{"type": "error"}

	if env.GetEnv("HCAPTCHA_SITEKEY", "") != "" {
		ok, err := hcaptcha.Verify(c.FormValue("h-captcha-response"))
		if err != nil || !ok {
			fm["message"] = "Captcha verification failed"

			return flash.WithError(c, fm).Redirect("/signup")
		}
	}

	password := c.FormValue("password")
	if password != c.FormValue("password_confirm") {
		fm["message"] = "Passwords do not match"

		return flash.WithError(c, fm).Redirect("/signup")
	}

	user, err := models.CreateUser(c.FormValue("name"), c.FormValue("email"), password)
	if err != nil {
		fm["message"] = err.Error()

		return flash.WithError(c, fm).Redirect("/signup")
	}

	if err := repository.GetGlobalFactory().GetUserRepository().Create(user); err != nil {
		fm["message"] = "Registration failed, the email may already be in use"

		return flash.WithError(c, fm).Redirect("/signup")
	}

	if err := mail.SendVerificationMail(user.Email, user.VerificationCode); err != nil {
		log.Printf("signup page: verification mail to %s failed: %v", user.Email, err)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Account created. Check your inbox for the verification code.",
	}

	return flash.WithSuccess(c, fm).Redirect("/verify-email?email=" + user.Email)
}

// HandleVerifyPage renders the code-entry form and processes the code.
func HandleVerifyPage(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("auth/verify", pageData(c, "Verify email", fiber.Map{
			"Email": c.Query("email"),
		}), "layouts/main")
	}

	fm := fiber.Map{"type": "error"}
	email := c.FormValue("email")

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(email)
	if err != nil || !user.IsVerificationCodeValid(c.FormValue("code")) {
		fm["message"] = "Invalid verification code"

		return flash.WithError(c, fm).Redirect("/verify-email?email=" + email)
	}

	user.MarkVerified()
	if err := repo.Update(user); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/verify-email?email=" + email)
	}

	if err := mail.SendWelcomeMail(user.Email, user.Name); err != nil {
		log.Printf("verify page: welcome mail to %s failed: %v", user.Email, err)
	}

	if raw, err := token.Issue(user); err == nil {
		token.SetAuthCookie(c, raw)
	}
	if err := identity.EstablishSession(c, user); err != nil {
		log.Printf("verify page: session establish failed: %v", err)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Email verified, welcome to Inkwell!",
	}

	return flash.WithSuccess(c, fm).Redirect("/dashboard")
}

// HandleDashboardPage shows the author's posts and credit balance.
func HandleDashboardPage(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	posts, err := repository.GetGlobalFactory().GetBlogRepository().GetByAuthorID(id.UserID)
	if err != nil {
		log.Printf("dashboard: posts lookup failed for user %d: %v", id.UserID, err)
	}

	var totalViews uint
	for i := range posts {
		totalViews += posts[i].ViewCount
	}

	return c.Render("dashboard", pageData(c, "Dashboard", fiber.Map{
		"Posts":      posts,
		"TotalViews": totalViews,
		"Credits":    id.Credits,
	}), "layouts/main")
}

// HandleProfilePage shows the account page.
func HandleProfilePage(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(id.UserID)
	if err != nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	sub, err := premium.ActiveSubscription(user.ID)
	if err != nil {
		log.Printf("profile: subscription lookup failed for user %d: %v", user.ID, err)
	}

	return c.Render("profile", pageData(c, "Profile", fiber.Map{
		"User":         user,
		"AvatarURL":    utils.GetGravatarURL(user.Email, 200),
		"Subscription": sub,
	}), "layouts/main")
}

// HandleSubscriptionPage shows the premium upgrade page with the checkout
// key for the payment widget.
func HandleSubscriptionPage(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	sub, err := premium.ActiveSubscription(id.UserID)
	if err != nil {
		log.Printf("subscription page: lookup failed for user %d: %v", id.UserID, err)
	}

	return c.Render("subscription", pageData(c, "Premium", fiber.Map{
		"Subscription": sub,
		"Amount":       subscriptionAmount / 100,
		"Currency":     subscriptionCurrency,
		"KeyID":        env.GetEnv("PAYMENT_KEY_ID", ""),
	}), "layouts/main")
}
