package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/repository"
	"github.com/contentdeck/contentdeck/internal/transfer"
)

type PostService interface {
	CreatePost(ctx context.Context, userID string, pc *transfer.PostCreation) (*models.Post, error)
	UpdatePost(ctx context.Context, userID, postID string, pu *transfer.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
	GetPost(ctx context.Context, userID, postID string) (*models.Post, error)
	GetPosts(ctx context.Context, userID string, filter transfer.PostFilter) ([]*models.Post, error)
	SchedulePost(ctx context.Context, userID, postID string, at time.Time) (*models.Post, error)
	UnschedulePost(ctx context.Context, userID, postID string) (*models.Post, error)
	MovePostToFolder(ctx context.Context, userID, postID, folderID string) (*models.Post, error)
	DuplicatePost(ctx context.Context, userID, postID string) (*models.Post, error)
	GenerateContent(ctx context.Context, userID string, gr *transfer.GenerationRequest) error
	GetDashboardStats(ctx context.Context, userID string) (*transfer.DashboardStats, error)
	GetScheduledPosts(ctx context.Context, userID string, start, end *time.Time) ([]*models.Post, error)
}

type postService struct {
	pr    repository.PostRepository
	fr    repository.FolderRepository
	cache PostCache
	gen   GenerationService
}

func NewPostService(
	pr repository.PostRepository,
	fr repository.FolderRepository,
	cache PostCache,
	gen GenerationService) PostService {
	return &postService{
		pr:    pr,
		fr:    fr,
		cache: cache,
		gen:   gen,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID string, pc *transfer.PostCreation) (*models.Post, error) {
	if err := validatePostCreation(pc); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if pc.FolderID != nil {
		if err := s.checkFolder(ctx, userID, *pc.FolderID); err != nil {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
	}

	platform := pc.Platform
	if platform == "" {
		platform = models.PlatformAll
	}

	status := models.PostStatusDraft
	if pc.ScheduledAt != nil {
		status = models.PostStatusScheduled
	}

	post := &models.Post{
		UserID:      userID,
		Caption:     pc.Caption,
		Hashtags:    pc.Hashtags,
		Platform:    platform,
		FolderID:    pc.FolderID,
		ImagePrompt: pc.ImagePrompt,
		Status:      status,
		ScheduledAt: pc.ScheduledAt,
	}

	created, err := s.pr.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	slog.Info("post created", "post_id", created.ID, "user_id", userID, "status", created.Status)
	return created, nil
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID string, pu *transfer.PostUpdate) (*models.Post, error) {
	if err := validatePostUpdate(pu); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("failed to update post: %w", ErrPostNotFound)
	}

	if pu.FolderID != nil && !pu.ClearFolder {
		if err := s.checkFolder(ctx, userID, *pu.FolderID); err != nil {
			return nil, fmt.Errorf("failed to update post: %w", err)
		}
	}

	if pu.Caption != nil {
		post.Caption = *pu.Caption
	}
	if pu.Hashtags != nil {
		post.Hashtags = *pu.Hashtags
	}
	if pu.Platform != nil {
		post.Platform = *pu.Platform
	}
	if pu.ClearFolder {
		post.FolderID = nil
	} else if pu.FolderID != nil {
		post.FolderID = pu.FolderID
	}
	if pu.ImagePrompt != nil {
		post.ImagePrompt = *pu.ImagePrompt
	}
	if pu.ScheduledAt != nil {
		post.ScheduledAt = pu.ScheduledAt
	}
	if pu.Status != nil {
		post.Status = *pu.Status
	}

	updated, err := s.pr.Update(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("failed to update post: %w", ErrPostNotFound)
	}

	s.cache.Invalidate(ctx, userID)
	return updated, nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if post == nil {
		return fmt.Errorf("failed to delete post: %w", ErrPostNotFound)
	}

	if err := s.pr.Remove(ctx, postID, userID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	return nil
}

func (s *postService) GetPost(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("failed to get post: %w", ErrPostNotFound)
	}
	return post, nil
}

func (s *postService) GetPosts(ctx context.Context, userID string, filter transfer.PostFilter) ([]*models.Post, error) {
	if filter.FolderID != "" {
		if err := s.checkFolder(ctx, userID, filter.FolderID); err != nil {
			return nil, fmt.Errorf("failed to get posts: %w", err)
		}
	}

	// Only the unfiltered list is cached; filtered queries always hit the
	// database so a stale snapshot can never leak into a narrowed view.
	if !filter.IsZero() {
		posts, err := s.pr.List(ctx, userID, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to get posts: %w", err)
		}
		return posts, nil
	}

	if posts, ok := s.cache.Get(ctx, userID); ok {
		slog.Info("post list cache hit", "user_id", userID)
		return posts, nil
	}

	posts, err := s.pr.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	s.cache.Set(ctx, userID, posts)
	return posts, nil
}

func (s *postService) SchedulePost(ctx context.Context, userID, postID string, at time.Time) (*models.Post, error) {
	if !at.After(time.Now()) {
		return nil, fmt.Errorf("failed to schedule post: %w",
			NewValidationError("scheduledAt", "Scheduled time must be in the future"))
	}

	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("failed to schedule post: %w", ErrPostNotFound)
	}

	scheduled, err := s.pr.Schedule(ctx, postID, userID, at)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule post: %w", err)
	}
	if scheduled == nil {
		return nil, fmt.Errorf("failed to schedule post: %w", ErrPostNotFound)
	}

	s.cache.Invalidate(ctx, userID)
	slog.Info("post scheduled", "post_id", postID, "scheduled_at", at)
	return scheduled, nil
}

func (s *postService) UnschedulePost(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to unschedule post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("failed to unschedule post: %w", ErrPostNotFound)
	}

	draft, err := s.pr.Unschedule(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to unschedule post: %w", err)
	}
	if draft == nil {
		return nil, fmt.Errorf("failed to unschedule post: %w", ErrPostNotFound)
	}

	s.cache.Invalidate(ctx, userID)
	return draft, nil
}

func (s *postService) MovePostToFolder(ctx context.Context, userID, postID, folderID string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to move post to folder: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("failed to move post to folder: %w", ErrPostNotFound)
	}

	if err := s.checkFolder(ctx, userID, folderID); err != nil {
		return nil, fmt.Errorf("failed to move post to folder: %w", err)
	}

	moved, err := s.pr.MoveToFolder(ctx, postID, userID, &folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to move post to folder: %w", err)
	}
	if moved == nil {
		return nil, fmt.Errorf("failed to move post to folder: %w", ErrPostNotFound)
	}

	s.cache.Invalidate(ctx, userID)
	return moved, nil
}

func (s *postService) DuplicatePost(ctx context.Context, userID, postID string) (*models.Post, error) {
	original, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate post: %w", err)
	}
	if original == nil {
		return nil, fmt.Errorf("failed to duplicate post: %w", ErrPostNotFound)
	}

	// The copy is always a fresh draft; the schedule is never carried over.
	copyPost := &models.Post{
		UserID:      userID,
		Caption:     original.Caption + " (Copy)",
		Hashtags:    original.Hashtags,
		Platform:    original.Platform,
		FolderID:    original.FolderID,
		ImagePrompt: original.ImagePrompt,
		Status:      models.PostStatusDraft,
	}

	created, err := s.pr.Create(ctx, copyPost)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate post: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	return created, nil
}

func (s *postService) GenerateContent(ctx context.Context, userID string, gr *transfer.GenerationRequest) error {
	if err := validateGenerationRequest(gr); err != nil {
		return fmt.Errorf("failed to generate content: %w", err)
	}

	generated, err := s.gen.GeneratePosts(ctx, gr)
	if err != nil {
		return fmt.Errorf("failed to generate content: %w", err)
	}

	now := time.Now()
	posts := make([]*models.Post, 0, len(generated))
	for _, item := range generated {
		platform := item.Platform
		if _, ok := validPlatforms[platform]; !ok {
			platform = models.PlatformAll
		}

		post := &models.Post{
			UserID:      userID,
			Caption:     item.Caption,
			Hashtags:    item.Hashtags,
			Platform:    platform,
			ImagePrompt: item.ImagePrompt,
			Status:      models.PostStatusDraft,
		}
		if item.ScheduledAt != nil && item.ScheduledAt.After(now) {
			post.Status = models.PostStatusScheduled
			post.ScheduledAt = item.ScheduledAt
		}
		posts = append(posts, post)
	}

	if _, err := s.pr.CreateBatch(ctx, posts); err != nil {
		return fmt.Errorf("failed to generate content: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	slog.Info("generated posts saved", "user_id", userID, "count", len(posts))
	return nil
}

func (s *postService) GetDashboardStats(ctx context.Context, userID string) (*transfer.DashboardStats, error) {
	posts, err := s.pr.List(ctx, userID, transfer.PostFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	folders, err := s.fr.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	stats := &transfer.DashboardStats{
		TotalPosts:   len(posts),
		TotalFolders: len(folders),
	}
	for _, post := range posts {
		switch post.Status {
		case models.PostStatusScheduled:
			stats.ScheduledPosts++
		case models.PostStatusPublished:
			stats.PublishedPosts++
		case models.PostStatusDraft:
			stats.DraftPosts++
		}
	}
	return stats, nil
}

func (s *postService) GetScheduledPosts(ctx context.Context, userID string, start, end *time.Time) ([]*models.Post, error) {
	posts, err := s.pr.List(ctx, userID, transfer.PostFilter{Status: models.PostStatusScheduled})
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled posts: %w", err)
	}

	if start == nil && end == nil {
		return posts, nil
	}

	windowed := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		if post.ScheduledAt == nil {
			continue
		}
		if start != nil && post.ScheduledAt.Before(*start) {
			continue
		}
		if end != nil && post.ScheduledAt.After(*end) {
			continue
		}
		windowed = append(windowed, post)
	}
	return windowed, nil
}

func (s *postService) checkFolder(ctx context.Context, userID, folderID string) error {
	folder, err := s.fr.GetByID(ctx, folderID, userID)
	if err != nil {
		return err
	}
	if folder == nil {
		return ErrFolderNotFound
	}
	return nil
}
