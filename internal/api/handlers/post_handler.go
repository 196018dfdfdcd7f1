package handlers

import (
	"log/slog"
	"time"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/queue"
	"github.com/contentdeck/contentdeck/internal/service"
	"github.com/contentdeck/contentdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type PostHandler struct {
	s           service.PostService
	AsynqClient *asynq.Client
}

func NewPostHandler(service service.PostService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: service, AsynqClient: asynqClient}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unable to parse request body",
		})
	}

	post, err := h.s.CreatePost(c.Context(), userID, &pc)
	if err != nil {
		return RespondError(c, err)
	}

	h.enqueuePublish(post)
	return Respond(c, fiber.StatusCreated, "Post created successfully", post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	var pu transfer.PostUpdate
	if err := c.BodyParser(&pu); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unable to parse request body",
		})
	}

	post, err := h.s.UpdatePost(c.Context(), userID, postID, &pu)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Post updated successfully", post)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	if err := h.s.DeletePost(c.Context(), userID, postID); err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Post deleted successfully", nil)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	post, err := h.s.GetPost(c.Context(), userID, postID)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Post retrieved successfully", post)
}

func (h *PostHandler) GetPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	filter := transfer.PostFilter{
		FolderID: c.Query("folderId"),
		Status:   c.Query("status"),
		Platform: c.Query("platform"),
		Search:   c.Query("search"),
		Limit:    c.QueryInt("limit", 0),
		Offset:   c.QueryInt("offset", 0),
	}

	posts, err := h.s.GetPosts(c.Context(), userID, filter)
	if err != nil {
		return RespondError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Posts retrieved successfully",
		"data":    posts,
		"total":   len(posts),
	})
}

func (h *PostHandler) SchedulePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	var ps transfer.PostSchedule
	if err := c.BodyParser(&ps); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unable to parse request body",
		})
	}

	post, err := h.s.SchedulePost(c.Context(), userID, postID, ps.ScheduledAt)
	if err != nil {
		return RespondError(c, err)
	}

	h.enqueuePublish(post)
	return Respond(c, fiber.StatusOK, "Post scheduled successfully", post)
}

func (h *PostHandler) UnschedulePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	post, err := h.s.UnschedulePost(c.Context(), userID, postID)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Post unscheduled successfully", post)
}

func (h *PostHandler) MovePostToFolder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	var pm transfer.PostMove
	if err := c.BodyParser(&pm); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unable to parse request body",
		})
	}

	post, err := h.s.MovePostToFolder(c.Context(), userID, postID, pm.FolderID)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Post moved successfully", post)
}

func (h *PostHandler) DuplicatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	post, err := h.s.DuplicatePost(c.Context(), userID, postID)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusCreated, "Post duplicated successfully", post)
}

func (h *PostHandler) GenerateContent(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var gr transfer.GenerationRequest
	if err := c.BodyParser(&gr); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unable to parse request body",
		})
	}

	if err := h.s.GenerateContent(c.Context(), userID, &gr); err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusCreated, "Content generated successfully", nil)
}

func (h *PostHandler) GetDashboardStats(c *fiber.Ctx) error {
	userID := GetUserID(c)

	stats, err := h.s.GetDashboardStats(c.Context(), userID)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (h *PostHandler) GetScheduledPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var start, end *time.Time
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid startDate format",
			})
		}
		start = &parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid endDate format",
			})
		}
		end = &parsed
	}

	posts, err := h.s.GetScheduledPosts(c.Context(), userID, start, end)
	if err != nil {
		return RespondError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return Respond(c, fiber.StatusOK, "Scheduled posts retrieved successfully", posts)
}

// enqueuePublish queues the delayed publish task for a scheduled post. An
// enqueue failure is logged, not surfaced: the cron sweep re-enqueues any
// post whose task went missing.
func (h *PostHandler) enqueuePublish(post *models.Post) {
	if post.Status != models.PostStatusScheduled || post.ScheduledAt == nil {
		return
	}

	delay := time.Until(*post.ScheduledAt)
	if delay < 0 {
		delay = 0
	}

	err := queue.EnqueuePublish(h.AsynqClient, queue.PublishPostPayload{PostID: post.ID}, delay)
	if err != nil {
		slog.Error("unable to enqueue publish task", "post_id", post.ID, "error", err)
	}
}
