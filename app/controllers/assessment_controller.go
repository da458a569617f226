package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

func HandleAssessmentList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	assessments, err := repos.Assessment.ListByOrganization(orgID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load assessments")
	}

	return c.JSON(fiber.Map{"assessments": assessments})
}

func HandleAssessmentShow(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid assessment id")
	}

	assessment, err := repos.Assessment.GetByID(id)
	if err != nil || !sameOrganization(c, assessment.OrganizationID) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Assessment not found")
	}

	return c.JSON(fiber.Map{"assessment": assessment})
}

func HandleAssessmentCreate(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	var body struct {
		Title         string `json:"title"`
		QuestionCount int    `json:"question_count"`
		PassScore     int    `json:"pass_score"`
		Published     bool   `json:"published"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	assessment := &models.Assessment{
		OrganizationID: usercontext.GetOrgID(c),
		CreatorID:      usercontext.GetUserID(c),
		Title:          body.Title,
		QuestionCount:  body.QuestionCount,
		PassScore:      body.PassScore,
		Published:      body.Published,
	}
	if err := assessment.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	if err := repository.GetGlobalRepositories().Assessment.Create(assessment); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create assessment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"assessment": assessment})
}

func HandleAssessmentUpdate(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid assessment id")
	}

	assessment, err := repos.Assessment.GetByID(id)
	if err != nil || !sameOrganization(c, assessment.OrganizationID) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Assessment not found")
	}

	var body struct {
		Title         *string `json:"title"`
		QuestionCount *int    `json:"question_count"`
		PassScore     *int    `json:"pass_score"`
		Published     *bool   `json:"published"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if body.Title != nil {
		assessment.Title = *body.Title
	}
	if body.QuestionCount != nil {
		assessment.QuestionCount = *body.QuestionCount
	}
	if body.PassScore != nil {
		assessment.PassScore = *body.PassScore
	}
	if body.Published != nil {
		assessment.Published = *body.Published
	}

	if err := assessment.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	if err := repos.Assessment.Update(assessment); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update assessment")
	}

	return c.JSON(fiber.Map{"assessment": assessment})
}

func HandleAssessmentDelete(c *fiber.Ctx) error {
	if !canManageContent(c) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Insufficient role")
	}

	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid assessment id")
	}

	assessment, err := repos.Assessment.GetByID(id)
	if err != nil || !sameOrganization(c, assessment.OrganizationID) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Assessment not found")
	}

	if err := repos.Assessment.Delete(assessment.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete assessment")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
