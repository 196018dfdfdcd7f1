package service

import (
	"context"
	"time"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/transfer"
	"github.com/stretchr/testify/mock"
)

// Mock repositories for testing

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) CreateBatch(ctx context.Context, posts []*models.Post) ([]*models.Post, error) {
	args := m.Called(ctx, posts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id, userID string) (*models.Post, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) List(ctx context.Context, userID string, filter transfer.PostFilter) ([]*models.Post, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *mockPostRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) Remove(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *mockPostRepository) Schedule(ctx context.Context, id, userID string, at time.Time) (*models.Post, error) {
	args := m.Called(ctx, id, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) Unschedule(ctx context.Context, id, userID string) (*models.Post, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) MoveToFolder(ctx context.Context, id, userID string, folderID *string) (*models.Post, error) {
	args := m.Called(ctx, id, userID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *mockPostRepository) GetForPublish(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) UpdateStatus(ctx context.Context, id, status string, publishedAt *time.Time) error {
	args := m.Called(ctx, id, status, publishedAt)
	return args.Error(0)
}

type mockFolderRepository struct {
	mock.Mock
}

func (m *mockFolderRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	args := m.Called(ctx, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Folder), args.Error(1)
}

func (m *mockFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Folder), args.Error(1)
}

func (m *mockFolderRepository) List(ctx context.Context, userID string) ([]*models.Folder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Folder), args.Error(1)
}

func (m *mockFolderRepository) Update(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	args := m.Called(ctx, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Folder), args.Error(1)
}

func (m *mockFolderRepository) RemoveWithReassign(ctx context.Context, id, userID string, moveToFolderID *string) error {
	args := m.Called(ctx, id, userID, moveToFolderID)
	return args.Error(0)
}

func (m *mockFolderRepository) ExistsByName(ctx context.Context, userID, name, excludeID string) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockPostCache struct {
	mock.Mock
}

func (m *mockPostCache) Get(ctx context.Context, userID string) ([]*models.Post, bool) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]*models.Post), args.Bool(1)
}

func (m *mockPostCache) Set(ctx context.Context, userID string, posts []*models.Post) {
	m.Called(ctx, userID, posts)
}

func (m *mockPostCache) Invalidate(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}

type mockGenerationService struct {
	mock.Mock
}

func (m *mockGenerationService) GeneratePosts(ctx context.Context, gr *transfer.GenerationRequest) ([]*transfer.GeneratedPost, error) {
	args := m.Called(ctx, gr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.GeneratedPost), args.Error(1)
}
