package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

func HandlePathwayList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	pathways, err := repos.Pathway.ListByOrganization(orgID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load pathways")
	}

	return c.JSON(fiber.Map{"pathways": pathways})
}

func HandlePathwayShow(c *fiber.Ctx) error {
	pathway, errResp := loadOrgPathway(c)
	if pathway == nil {
		return errResp
	}

	return c.JSON(fiber.Map{"pathway": pathway})
}

func HandlePathwayCreate(c *fiber.Ctx) error {
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

	pathway := &models.Pathway{
		OrganizationID: usercontext.GetOrgID(c),
		CreatorID:      usercontext.GetUserID(c),
		Title:          body.Title,
		Description:    body.Description,
		Published:      body.Published,
	}
	if err := pathway.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	if err := repository.GetGlobalRepositories().Pathway.Create(pathway); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create pathway")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"pathway": pathway})
}

func HandlePathwayUpdate(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	pathway, errResp := loadOrgPathway(c)
	if pathway == nil {
		return errResp
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
		pathway.Title = *body.Title
	}
	if body.Description != nil {
		pathway.Description = *body.Description
	}
	if body.Published != nil {
		pathway.Published = *body.Published
	}

	if err := pathway.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	if err := repository.GetGlobalRepositories().Pathway.Update(pathway); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update pathway")
	}

	return c.JSON(fiber.Map{"pathway": pathway})
}

func HandlePathwayDelete(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	pathway, errResp := loadOrgPathway(c)
	if pathway == nil {
		return errResp
	}

	if err := repository.GetGlobalRepositories().Pathway.Delete(pathway.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete pathway")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePathwayAddStep appends a step at the end of the outline.
func HandlePathwayAddStep(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	pathway, errResp := loadOrgPathway(c)
	if pathway == nil {
		return errResp
	}

	var body struct {
		Kind  string `json:"kind"`
		RefID uint   `json:"ref_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if !models.ValidStepKind(body.Kind) || body.RefID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid step kind or target")
	}

	step := &models.PathwayStep{
		PathwayID: pathway.ID,
		Kind:      body.Kind,
		RefID:     body.RefID,
	}
	if err := repository.GetGlobalRepositories().Pathway.AddStep(step); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to add step")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"step": step})
}

// HandlePathwayRemoveStep deletes a step and renumbers the remainder densely.
func HandlePathwayRemoveStep(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	pathway, errResp := loadOrgPathway(c)
	if pathway == nil {
		return errResp
	}

	stepID := parseIDParam(c, "stepId")
	if stepID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid step id")
	}

	if err := repository.GetGlobalRepositories().Pathway.RemoveStep(pathway.ID, stepID); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Step not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePathwayReorderStep moves a step to a new position. Out-of-range
// positions clamp to the ends of the outline.
func HandlePathwayReorderStep(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	pathway, errResp := loadOrgPathway(c)
	if pathway == nil {
		return errResp
	}

	stepID := parseIDParam(c, "stepId")
	if stepID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid step id")
	}

	var body struct {
		Position int `json:"position"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	repos := repository.GetGlobalRepositories()
	steps, err := repos.Pathway.GetSteps(pathway.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load steps")
	}

	if !models.ReorderSteps(steps, stepID, body.Position) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Step not found")
	}
	if err := repos.Pathway.SaveSteps(steps); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save order")
	}

	return c.JSON(fiber.Map{"steps": steps})
}

// loadOrgPathway fetches the pathway from the :id param and enforces tenant
// scoping. On failure the returned error response is already written.
func loadOrgPathway(c *fiber.Ctx) (*models.Pathway, error) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return nil, jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid pathway id")
	}

	pathway, err := repository.GetGlobalRepositories().Pathway.GetByID(id)
	if err != nil {
		return nil, jsonError(c, fiber.StatusNotFound, "not_found", "Pathway not found")
	}
	if !sameOrganization(c, pathway.OrganizationID) {
		return nil, jsonError(c, fiber.StatusNotFound, "not_found", "Pathway not found")
	}

	return pathway, nil
}
