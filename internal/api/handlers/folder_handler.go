package handlers

import (
	"log/slog"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/service"
	"github.com/contentdeck/contentdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type FolderHandler struct {
	s service.FolderService
}

func NewFolderHandler(service service.FolderService) *FolderHandler {
	return &FolderHandler{s: service}
}

func (h *FolderHandler) CreateFolder(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var fc transfer.FolderCreation
	if err := c.BodyParser(&fc); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unable to parse request body",
		})
	}

	folder, err := h.s.CreateFolder(c.Context(), userID, &fc)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusCreated, "Folder created successfully", folder)
}

func (h *FolderHandler) UpdateFolder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	folderID := c.Params("id")

	var fu transfer.FolderUpdate
	if err := c.BodyParser(&fu); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unable to parse request body",
		})
	}

	folder, err := h.s.UpdateFolder(c.Context(), userID, folderID, &fu)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Folder updated successfully", folder)
}

func (h *FolderHandler) DeleteFolder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	folderID := c.Params("id")
	moveTo := c.Query("moveTo")

	if err := h.s.DeleteFolder(c.Context(), userID, folderID, moveTo); err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Folder deleted successfully", nil)
}

func (h *FolderHandler) GetFolder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	folderID := c.Params("id")

	folder, err := h.s.GetFolder(c.Context(), userID, folderID)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Folder retrieved successfully", folder)
}

func (h *FolderHandler) GetFolders(c *fiber.Ctx) error {
	userID := GetUserID(c)

	folders, err := h.s.GetFolders(c.Context(), userID)
	if err != nil {
		return RespondError(c, err)
	}
	if folders == nil {
		folders = []*models.Folder{}
	}

	return Respond(c, fiber.StatusOK, "Folders retrieved successfully", folders)
}

func (h *FolderHandler) GetFolderWithPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	folderID := c.Params("id")

	folder, err := h.s.GetFolderWithPosts(c.Context(), userID, folderID)
	if err != nil {
		return RespondError(c, err)
	}

	return Respond(c, fiber.StatusOK, "Folder retrieved successfully", folder)
}
