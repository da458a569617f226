package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/logging"
	"github.com/formaflow/formaflow/internal/pkg/mail"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// HandleOrgShow returns the caller's organization with its member count.
func HandleOrgShow(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	org, err := repos.Organization.GetByID(orgID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Organization not found")
	}

	count, _ := repos.Membership.CountByOrganization(orgID)

	return c.JSON(fiber.Map{
		"organization": org,
		"member_count": count,
	})
}

// HandleOrgMembers lists all memberships of the caller's organization.
func HandleOrgMembers(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	memberships, err := repos.Membership.ListByOrganization(orgID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load members")
	}

	members := make([]fiber.Map, 0, len(memberships))
	for _, m := range memberships {
		entry := fiber.Map{
			"membership_id": m.ID,
			"user_id":       m.UserID,
			"role":          m.Role,
			"joined_at":     m.CreatedAt,
		}
		if user, uerr := repos.User.GetByID(m.UserID); uerr == nil {
			entry["name"] = user.Name
			entry["email"] = user.Email
		}
		members = append(members, entry)
	}

	return c.JSON(fiber.Map{"members": members})
}

// HandleOrgInviteMember adds a user to the caller's organization with the
// given role. Unknown emails get an inactive account plus an invite mail.
func HandleOrgInviteMember(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := (&models.Membership{Role: body.Role}).Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", fmt.Sprintf("%s: %q", models.ErrInvalidRole, body.Role))
	}

	org, err := repos.Organization.GetByID(orgID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Organization not found")
	}

	user, err := repos.User.GetByEmail(body.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = models.CreateUser(firstNonEmpty(body.Name, body.Email), body.Email, models.RandomPassword())
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
		}
		user.Status = models.STATUS_INACTIVE
		if err = user.GenerateActivationToken(); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create invite")
		}
		if err = repos.User.Create(user); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create user")
		}
	} else if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	if existing, _ := repos.Membership.GetByOrgAndUser(orgID, user.ID); existing != nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "User is already a member")
	}

	membership := &models.Membership{
		OrganizationID: orgID,
		UserID:         user.ID,
		Role:           body.Role,
	}
	if err = repos.Membership.Create(membership); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to add member")
	}

	go func(to, orgName, role string) {
		if mailErr := mail.SendInviteMail(to, orgName, role); mailErr != nil {
			logging.GetLogger().Warn("invite mail failed", zap.Error(mailErr))
		}
	}(user.Email, org.Name, body.Role)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"membership": membership})
}

// HandleOrgChangeMemberRole updates the role on an existing membership.
func HandleOrgChangeMemberRole(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	membershipID := parseIDParam(c, "id")
	if membershipID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid membership id")
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := (&models.Membership{Role: body.Role}).Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", fmt.Sprintf("%s: %q", models.ErrInvalidRole, body.Role))
	}

	membership, err := repos.Membership.GetByID(membershipID)
	if err != nil || membership.OrganizationID != orgID {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Membership not found")
	}

	// Keep at least one admin per organization.
	if membership.Role == models.ROLE_ADMIN && body.Role != models.ROLE_ADMIN {
		if !orgHasOtherAdmin(repos, orgID, membership.ID) {
			return jsonError(c, fiber.StatusConflict, "conflict", "Organization needs at least one admin")
		}
	}

	if err = repos.Membership.UpdateRole(membership.ID, body.Role); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update role")
	}

	return c.JSON(fiber.Map{"membership_id": membership.ID, "role": body.Role})
}

// HandleOrgRemoveMember removes a membership from the organization.
func HandleOrgRemoveMember(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	orgID := usercontext.GetOrgID(c)

	membershipID := parseIDParam(c, "id")
	if membershipID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid membership id")
	}

	membership, err := repos.Membership.GetByID(membershipID)
	if err != nil || membership.OrganizationID != orgID {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Membership not found")
	}

	if membership.Role == models.ROLE_ADMIN && !orgHasOtherAdmin(repos, orgID, membership.ID) {
		return jsonError(c, fiber.StatusConflict, "conflict", "Organization needs at least one admin")
	}

	if err = repos.Membership.Delete(membership.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to remove member")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func orgHasOtherAdmin(repos *repository.Repositories, orgID, excludeMembershipID uint) bool {
	memberships, err := repos.Membership.ListByOrganization(orgID)
	if err != nil {
		return false
	}
	for _, m := range memberships {
		if m.ID != excludeMembershipID && m.Role == models.ROLE_ADMIN {
			return true
		}
	}
	return false
}
