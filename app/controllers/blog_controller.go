package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/app/repository"
	"github.com/inkwell-app/inkwell/internal/pkg/identity"
	"github.com/inkwell-app/inkwell/internal/pkg/premium"
	"github.com/inkwell-app/inkwell/internal/pkg/utils"
)

type createPostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"coverImage"`
	Topic      string `json:"topic"`
	Type       string `json:"type"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// postIDParam parses the :id route parameter. Zero means invalid.
func postIDParam(c *fiber.Ctx) uint {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0
	}
	return uint(id)
}

// postResponse renders a post for the API. Paid content the reader is not
// entitled to is replaced with the excerpt and marked locked.
func postResponse(post *models.BlogPost, readerID uint) fiber.Map {
	locked := !premium.CanReadPost(post, readerID)
	content := post.Content
	if locked {
		content = post.DefaultExcerpt()
	}

	return fiber.Map{
		"id":          post.ID,
		"title":       post.Title,
		"content":     content,
		"excerpt":     post.DefaultExcerpt(),
		"cover_image": post.CoverImage,
		"topic":       post.Topic,
		"type":        post.Type,
		"featured":    post.Featured,
		"view_count":  post.ViewCount,
		"share_link":  post.ShareLink,
		"locked":      locked,
		"created_at":  post.CreatedAt,
		"author": fiber.Map{
			"id":   post.Author.ID,
			"name": post.Author.Name,
		},
	}
}

func listResponse(posts []models.BlogPost, readerID uint) []fiber.Map {
	out := make([]fiber.Map, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		out = append(out, fiber.Map{
			"id":          p.ID,
			"title":       p.Title,
			"excerpt":     p.DefaultExcerpt(),
			"cover_image": p.CoverImage,
			"topic":       p.Topic,
			"type":        p.Type,
			"featured":    p.Featured,
			"view_count":  p.ViewCount,
			"locked":      !premium.CanReadPost(p, readerID),
			"created_at":  p.CreatedAt,
			"author": fiber.Map{
				"id":   p.Author.ID,
				"name": p.Author.Name,
			},
		})
	}
	return out
}

// HandleBlogList returns published posts, filterable by topic, type and a
// free-text search.
func HandleBlogList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	filter := repository.BlogFilter{
		Topic:  c.Query("topic"),
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	posts, total, err := repository.GetGlobalFactory().GetBlogRepository().GetPublished(filter)
	if err != nil {
		log.Printf("blog list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load posts"})
	}

	return c.JSON(fiber.Map{
		"posts": listResponse(posts, identity.UserID(c)),
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// HandleBlogFeatured returns the featured posts for the landing page.
func HandleBlogFeatured(c *fiber.Ctx) error {
	posts, err := repository.GetGlobalFactory().GetBlogRepository().GetFeatured(6)
	if err != nil {
		log.Printf("featured posts failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load posts"})
	}

	return c.JSON(fiber.Map{"posts": listResponse(posts, identity.UserID(c))})
}

// HandleBlogGet returns a single post. Paid content comes back truncated and
// locked unless the reader is the author or holds an active subscription.
func HandleBlogGet(c *fiber.Ctx) error {
	id := postIDParam(c)
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	post, err := repository.GetGlobalFactory().GetBlogRepository().GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}
	if !post.Published && post.AuthorID != identity.UserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	return c.JSON(fiber.Map{"post": postResponse(post, identity.UserID(c))})
}

// HandleBlogCreate creates a post for the authenticated, verified author.
func HandleBlogCreate(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	post := &models.BlogPost{
		AuthorID:   id.UserID,
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Topic:      req.Topic,
		Type:       req.Type,
		Published:  true,
	}
	if post.Topic == "" {
		post.Topic = models.TOPIC_TECHNOLOGY
	}
	if post.Type == "" {
		post.Type = models.POST_TYPE_FREE
	}

	if err := post.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := repository.GetGlobalFactory().GetBlogRepository().Create(post); err != nil {
		log.Printf("blog create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create post"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"post":    postResponse(post, id.UserID),
	})
}

// HandleBlogUpdate edits a post. Only the author may touch it.
func HandleBlogUpdate(c *fiber.Ctx) error {
	id := postIDParam(c)
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	repo := repository.GetGlobalFactory().GetBlogRepository()
	post, err := repo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}
	if post.AuthorID != identity.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own posts"})
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Excerpt != "" {
		post.Excerpt = req.Excerpt
	}
	if req.CoverImage != "" {
		post.CoverImage = req.CoverImage
	}
	if req.Topic != "" {
		post.Topic = req.Topic
	}
	if req.Type != "" {
		post.Type = req.Type
	}

	if err := post.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := repo.Update(post); err != nil {
		log.Printf("blog update failed for post %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update post"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"post":    postResponse(post, identity.UserID(c)),
	})
}

// HandleBlogDelete removes a post. Only the author may delete it.
func HandleBlogDelete(c *fiber.Ctx) error {
	id := postIDParam(c)
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	repo := repository.GetGlobalFactory().GetBlogRepository()
	post, err := repo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}
	if post.AuthorID != identity.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own posts"})
	}

	if err := repo.Delete(id); err != nil {
		log.Printf("blog delete failed for post %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete post"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// HandleBlogView records a unique view and credits the author. Repeats and
// self-views are normal outcomes, answered with credited=false.
func HandleBlogView(c *fiber.Ctx) error {
	readerID := identity.UserID(c)
	if readerID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	id := postIDParam(c)
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	repo := repository.GetGlobalFactory().GetBlogRepository()
	post, err := repo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	result, err := repo.RecordView(post.ID, readerID, post.AuthorID)
	if err != nil {
		log.Printf("record view failed for post %d reader %d: %v", post.ID, readerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record view"})
	}

	resp := fiber.Map{"success": true, "credited": result.Credited}
	switch result.Reason {
	case repository.ViewReasonOwnPost:
		resp["message"] = "Authors do not earn credits from their own posts"
	case repository.ViewReasonAlreadyViewed:
		resp["message"] = "View already recorded"
	default:
		resp["message"] = "View recorded, author credited"
	}
	return c.JSON(resp)
}

// HandleCommentList returns the newest comments for a post.
func HandleCommentList(c *fiber.Ctx) error {
	id := postIDParam(c)
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	repo := repository.GetGlobalFactory().GetBlogRepository()
	comments, err := repo.GetComments(id, 50)
	if err != nil {
		log.Printf("comment list failed for post %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load comments"})
	}

	out := make([]fiber.Map, 0, len(comments))
	for i := range comments {
		cm := &comments[i]
		out = append(out, fiber.Map{
			"id":         cm.ID,
			"content":    cm.Content,
			"created_at": cm.CreatedAt,
			"user": fiber.Map{
				"id":     cm.User.ID,
				"name":   cm.User.Name,
				"avatar": utils.GetGravatarURL(cm.User.Email, 80),
			},
		})
	}

	return c.JSON(fiber.Map{"comments": out})
}

// HandleCommentCreate adds a comment to a post.
func HandleCommentCreate(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	postID := postIDParam(c)
	if postID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	repo := repository.GetGlobalFactory().GetBlogRepository()
	if _, err := repo.GetByID(postID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Comment content is required"})
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  id.UserID,
		Content: req.Content,
	}
	if err := repo.CreateComment(comment); err != nil {
		log.Printf("comment create failed for post %d: %v", postID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create comment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": fiber.Map{
			"id":         comment.ID,
			"content":    comment.Content,
			"created_at": comment.CreatedAt,
			"user": fiber.Map{
				"id":   id.UserID,
				"name": id.Name,
			},
		},
	})
}
