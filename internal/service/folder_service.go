package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/repository"
	"github.com/contentdeck/contentdeck/internal/transfer"
)

type FolderService interface {
	CreateFolder(ctx context.Context, userID string, fc *transfer.FolderCreation) (*models.Folder, error)
	UpdateFolder(ctx context.Context, userID, folderID string, fu *transfer.FolderUpdate) (*models.Folder, error)
	DeleteFolder(ctx context.Context, userID, folderID, moveToFolderID string) error
	GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error)
	GetFolders(ctx context.Context, userID string) ([]*models.Folder, error)
	GetFolderWithPosts(ctx context.Context, userID, folderID string) (*models.FolderWithPosts, error)
}

type folderService struct {
	fr repository.FolderRepository
	pr repository.PostRepository
	c  PostCache
}

func NewFolderService(fr repository.FolderRepository, pr repository.PostRepository, cache PostCache) FolderService {
	return &folderService{
		fr: fr,
		pr: pr,
		c:  cache,
	}
}

func (s *folderService) CreateFolder(ctx context.Context, userID string, fc *transfer.FolderCreation) (*models.Folder, error) {
	if err := validateFolderCreation(fc); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	taken, err := s.fr.ExistsByName(ctx, userID, fc.Name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("failed to create folder: %w", ErrFolderNameTaken)
	}

	color := fc.Color
	if color == "" {
		color = models.DefaultFolderColor
	}

	folder := &models.Folder{
		UserID:      userID,
		Name:        fc.Name,
		Description: fc.Description,
		Color:       color,
	}

	created, err := s.fr.Create(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	slog.Info("folder created", "folder_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *folderService) UpdateFolder(ctx context.Context, userID, folderID string, fu *transfer.FolderUpdate) (*models.Folder, error) {
	if err := validateFolderUpdate(fu); err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}

	folder, err := s.fr.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	if folder == nil {
		return nil, fmt.Errorf("failed to update folder: %w", ErrFolderNotFound)
	}

	if fu.Name != nil {
		taken, err := s.fr.ExistsByName(ctx, userID, *fu.Name, folderID)
		if err != nil {
			return nil, fmt.Errorf("failed to update folder: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("failed to update folder: %w", ErrFolderNameTaken)
		}
		folder.Name = *fu.Name
	}
	if fu.Description != nil {
		folder.Description = *fu.Description
	}
	if fu.Color != nil {
		folder.Color = *fu.Color
	}

	updated, err := s.fr.Update(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("failed to update folder: %w", ErrFolderNotFound)
	}

	return updated, nil
}

// DeleteFolder reassigns the folder's posts to the destination folder when
// one is given, otherwise detaches them, then removes the folder record.
// The whole mutation runs in one transaction so a crash cannot leave a
// half-migrated folder behind.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID, moveToFolderID string) error {
	folder, err := s.fr.GetByID(ctx, folderID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if folder == nil {
		return fmt.Errorf("failed to delete folder: %w", ErrFolderNotFound)
	}

	var destination *string
	if moveToFolderID != "" {
		dest, err := s.fr.GetByID(ctx, moveToFolderID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		if dest == nil {
			return fmt.Errorf("failed to delete folder: %w", ErrFolderNotFound)
		}
		destination = &dest.ID
	}

	if err := s.fr.RemoveWithReassign(ctx, folderID, userID, destination); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	s.c.Invalidate(ctx, userID)
	slog.Info("folder deleted", "folder_id", folderID, "user_id", userID, "posts_moved_to", moveToFolderID)
	return nil
}

func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	folder, err := s.fr.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	if folder == nil {
		return nil, fmt.Errorf("failed to get folder: %w", ErrFolderNotFound)
	}
	return folder, nil
}

func (s *folderService) GetFolders(ctx context.Context, userID string) ([]*models.Folder, error) {
	folders, err := s.fr.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get folders: %w", err)
	}
	return folders, nil
}

func (s *folderService) GetFolderWithPosts(ctx context.Context, userID, folderID string) (*models.FolderWithPosts, error) {
	var (
		wg        sync.WaitGroup
		folder    *models.Folder
		posts     []*models.Post
		folderErr error
		postsErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		folder, folderErr = s.fr.GetByID(ctx, folderID, userID)
	}()
	go func() {
		defer wg.Done()
		posts, postsErr = s.pr.List(ctx, userID, transfer.PostFilter{FolderID: folderID})
	}()
	wg.Wait()

	if folderErr != nil {
		return nil, fmt.Errorf("failed to get folder with posts: %w", folderErr)
	}
	if postsErr != nil {
		return nil, fmt.Errorf("failed to get folder with posts: %w", postsErr)
	}
	if folder == nil {
		return nil, fmt.Errorf("failed to get folder with posts: %w", ErrFolderNotFound)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return &models.FolderWithPosts{Folder: *folder, Posts: posts}, nil
}
