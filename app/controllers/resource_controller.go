package controllers

import (
	"io"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/resourcestore"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

const presignExpiry = 15 * time.Minute

func HandleResourceList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	resources, err := repos.Resource.ListByOrganization(orgID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load resources")
	}

	return c.JSON(fiber.Map{"resources": resources})
}

// HandleResourceUpload stores the uploaded file in object storage and
// records the resource row.
func HandleResourceUpload(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	store := resourcestore.GetClient()
	if store == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "storage_unavailable", "Object storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Missing file")
	}

	title := c.FormValue("title")
	if title == "" {
		title = fileHeader.Filename
	}

	f, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Unreadable file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to read file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	orgID := usercontext.GetOrgID(c)
	objectKey := resourcestore.ResourceObjectKey(orgID, filepath.Ext(fileHeader.Filename))

	if err := store.Upload(c.Context(), objectKey, data, contentType); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store file")
	}

	resource := &models.Resource{
		OrganizationID: orgID,
		CreatorID:      usercontext.GetUserID(c),
		Title:          title,
		StorageKey:     objectKey,
		MimeType:       contentType,
		FileSize:       int64(len(data)),
	}
	if err := resource.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	if err := repository.GetGlobalRepositories().Resource.Create(resource); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save resource")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"resource": resource})
}

// HandleResourceDownload returns a short-lived presigned URL for the file.
func HandleResourceDownload(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid resource id")
	}

	resource, err := repos.Resource.GetByID(id)
	if err != nil || !sameOrganization(c, resource.OrganizationID) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Resource not found")
	}

	store := resourcestore.GetClient()
	if store == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "storage_unavailable", "Object storage is not configured")
	}

	url, err := store.PresignDownload(c.Context(), resource.StorageKey, presignExpiry)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to sign download")
	}

	return c.JSON(fiber.Map{
		"url":        url,
		"expires_in": int(presignExpiry.Seconds()),
	})
}

func HandleResourceDelete(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid resource id")
	}

	resource, err := repos.Resource.GetByID(id)
	if err != nil || !sameOrganization(c, resource.OrganizationID) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Resource not found")
	}

	if store := resourcestore.GetClient(); store != nil && resource.StorageKey != "" {
		_ = store.Delete(c.Context(), resource.StorageKey)
	}

	if err := repos.Resource.Delete(resource.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete resource")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
