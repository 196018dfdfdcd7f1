package service

import (
	"context"
	"testing"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFolderServiceForTest() (*folderService, *mockFolderRepository, *mockPostRepository, *mockPostCache) {
	fr := new(mockFolderRepository)
	pr := new(mockPostRepository)
	cache := new(mockPostCache)
	svc := NewFolderService(fr, pr, cache).(*folderService)
	return svc, fr, pr, cache
}

func TestCreateFolder_DefaultsColor(t *testing.T) {
	svc, fr, _, _ := newFolderServiceForTest()

	fr.On("ExistsByName", mock.Anything, "u1", "Campaigns", "").Return(false, nil)
	fr.On("Create", mock.Anything, mock.MatchedBy(func(f *models.Folder) bool {
		return f.Color == models.DefaultFolderColor && f.Name == "Campaigns"
	})).Return(&models.Folder{ID: "f1", UserID: "u1", Name: "Campaigns", Color: models.DefaultFolderColor}, nil)

	folder, err := svc.CreateFolder(context.Background(), "u1", &transfer.FolderCreation{Name: "Campaigns"})

	require.NoError(t, err)
	assert.Equal(t, models.DefaultFolderColor, folder.Color)
	fr.AssertExpectations(t)
}

func TestCreateFolder_DuplicateNameConflicts(t *testing.T) {
	svc, fr, _, _ := newFolderServiceForTest()

	fr.On("ExistsByName", mock.Anything, "u1", "Campaigns", "").Return(true, nil)

	_, err := svc.CreateFolder(context.Background(), "u1", &transfer.FolderCreation{Name: "Campaigns"})

	require.Error(t, err)
	assert.True(t, IsConflict(err))
	fr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFolder_BadColorRejected(t *testing.T) {
	svc, fr, _, _ := newFolderServiceForTest()

	_, err := svc.CreateFolder(context.Background(), "u1", &transfer.FolderCreation{
		Name:  "Campaigns",
		Color: "blue",
	})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	fr.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateFolder_RenameExcludesSelfFromConflictCheck(t *testing.T) {
	svc, fr, _, _ := newFolderServiceForTest()

	fr.On("GetByID", mock.Anything, "f1", "u1").Return(&models.Folder{ID: "f1", UserID: "u1", Name: "Old"}, nil)
	fr.On("ExistsByName", mock.Anything, "u1", "New", "f1").Return(false, nil)
	fr.On("Update", mock.Anything, mock.MatchedBy(func(f *models.Folder) bool {
		return f.Name == "New"
	})).Return(&models.Folder{ID: "f1", UserID: "u1", Name: "New"}, nil)

	folder, err := svc.UpdateFolder(context.Background(), "u1", "f1", &transfer.FolderUpdate{Name: strPtr("New")})

	require.NoError(t, err)
	assert.Equal(t, "New", folder.Name)
	fr.AssertExpectations(t)
}

func TestUpdateFolder_RenameToTakenNameConflicts(t *testing.T) {
	svc, fr, _, _ := newFolderServiceForTest()

	fr.On("GetByID", mock.Anything, "f1", "u1").Return(&models.Folder{ID: "f1", UserID: "u1", Name: "Old"}, nil)
	fr.On("ExistsByName", mock.Anything, "u1", "Taken", "f1").Return(true, nil)

	_, err := svc.UpdateFolder(context.Background(), "u1", "f1", &transfer.FolderUpdate{Name: strPtr("Taken")})

	require.Error(t, err)
	assert.True(t, IsConflict(err))
	fr.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateFolder_NotFoundForOtherUser(t *testing.T) {
	svc, fr, _, _ := newFolderServiceForTest()

	fr.On("GetByID", mock.Anything, "f1", "u2").Return(nil, nil)

	_, err := svc.UpdateFolder(context.Background(), "u2", "f1", &transfer.FolderUpdate{Name: strPtr("New")})

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteFolder_DetachesPostsByDefault(t *testing.T) {
	svc, fr, _, cache := newFolderServiceForTest()

	fr.On("GetByID", mock.Anything, "f1", "u1").Return(&models.Folder{ID: "f1", UserID: "u1"}, nil)
	fr.On("RemoveWithReassign", mock.Anything, "f1", "u1", (*string)(nil)).Return(nil)
	cache.On("Invalidate", mock.Anything, "u1").Return()

	err := svc.DeleteFolder(context.Background(), "u1", "f1", "")

	require.NoError(t, err)
	fr.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestDeleteFolder_ReassignsToDestination(t *testing.T) {
	svc, fr, _, cache := newFolderServiceForTest()

	fr.On("GetByID", mock.Anything, "f1", "u1").Return(&models.Folder{ID: "f1", UserID: "u1"}, nil)
	fr.On("GetByID", mock.Anything, "f2", "u1").Return(&models.Folder{ID: "f2", UserID: "u1"}, nil)
	fr.On("RemoveWithReassign", mock.Anything, "f1", "u1", mock.MatchedBy(func(dest *string) bool {
		return dest != nil && *dest == "f2"
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, "u1").Return()

	err := svc.DeleteFolder(context.Background(), "u1", "f1", "f2")

	require.NoError(t, err)
	fr.AssertExpectations(t)
}

func TestDeleteFolder_UnknownDestinationFails(t *testing.T) {
	svc, fr, _, _ := newFolderServiceForTest()

	fr.On("GetByID", mock.Anything, "f1", "u1").Return(&models.Folder{ID: "f1", UserID: "u1"}, nil)
	fr.On("GetByID", mock.Anything, "f9", "u1").Return(nil, nil)

	err := svc.DeleteFolder(context.Background(), "u1", "f1", "f9")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	fr.AssertNotCalled(t, "RemoveWithReassign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetFolderWithPosts_ReturnsEmptySlice(t *testing.T) {
	svc, fr, pr, _ := newFolderServiceForTest()

	fr.On("GetByID", mock.Anything, "f1", "u1").Return(&models.Folder{ID: "f1", UserID: "u1", Name: "Campaigns"}, nil)
	pr.On("List", mock.Anything, "u1", transfer.PostFilter{FolderID: "f1"}).Return(nil, nil)

	result, err := svc.GetFolderWithPosts(context.Background(), "u1", "f1")

	require.NoError(t, err)
	assert.Equal(t, "Campaigns", result.Name)
	require.NotNil(t, result.Posts)
	assert.Empty(t, result.Posts)
}

func TestGetFolderWithPosts_NotFound(t *testing.T) {
	svc, fr, pr, _ := newFolderServiceForTest()

	fr.On("GetByID", mock.Anything, "f1", "u2").Return(nil, nil)
	pr.On("List", mock.Anything, "u2", transfer.PostFilter{FolderID: "f1"}).Return(nil, nil)

	_, err := svc.GetFolderWithPosts(context.Background(), "u2", "f1")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
