package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

func HandleFormationList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	formations, err := repos.Formation.ListByOrganization(orgID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load formations")
	}

	total, _ := repos.Formation.CountByOrganization(orgID)

	return c.JSON(fiber.Map{"formations": formations, "total": total})
}

func HandleFormationShow(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid formation id")
	}

	formation, err := repos.Formation.GetByID(id)
	if err != nil || !sameOrganization(c, formation.OrganizationID) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Formation not found")
	}

	return c.JSON(fiber.Map{"formation": formation})
}

func HandleFormationCreate(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Published   bool   `json:"published"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	formation := &models.Formation{
		OrganizationID: usercontext.GetOrgID(c),
		CreatorID:      usercontext.GetUserID(c),
		Title:          body.Title,
		Description:    body.Description,
		Published:      body.Published,
	}
	if err := formation.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	if err := repository.GetGlobalRepositories().Formation.Create(formation); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create formation")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"formation": formation})
}

func HandleFormationUpdate(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid formation id")
	}

	formation, err := repos.Formation.GetByID(id)
	if err != nil || !sameOrganization(c, formation.OrganizationID) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Formation not found")
	}

	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Published   *bool   `json:"published"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if body.Title != nil {
		formation.Title = *body.Title
	}
	if body.Description != nil {
		formation.Description = *body.Description
	}
	if body.Published != nil {
		formation.Published = *body.Published
	}

	if err := formation.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	if err := repos.Formation.Update(formation); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update formation")
	}

	return c.JSON(fiber.Map{"formation": formation})
}

func HandleFormationDelete(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid formation id")
	}

	formation, err := repos.Formation.GetByID(id)
	if err != nil || !sameOrganization(c, formation.OrganizationID) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Formation not found")
	}

	if err := repos.Formation.Delete(formation.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete formation")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
