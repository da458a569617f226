package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/controllers"
	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/internal/pkg/middleware"
)

// registerRoleRoutes mounts one group per membership role. The global route
// gate already bounces callers whose role does not match the prefix; the
// RequireRole middleware is the authoritative second check.
func (h HttpRouter) registerRoleRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.RequireRole(models.ROLE_ADMIN))
	admin.Get("/", controllers.HandleOrgShow)
	admin.Get("/members", controllers.HandleOrgMembers)
	admin.Post("/members", controllers.HandleOrgInviteMember)
	admin.Put("/members/:id/role", controllers.HandleOrgChangeMemberRole)
	admin.Delete("/members/:id", controllers.HandleOrgRemoveMember)
	registerContentRoutes(admin, true)

	formateur := app.Group("/formateur", middleware.RequireRole(models.ROLE_FORMATEUR))
	formateur.Get("/", controllers.HandleOrgShow)
	registerContentRoutes(formateur, true)

	tuteur := app.Group("/tuteur", middleware.RequireRole(models.ROLE_TUTEUR))
	tuteur.Get("/", controllers.HandleOrgShow)
	registerContentRoutes(tuteur, false)

	apprenant := app.Group("/apprenant", middleware.RequireRole(models.ROLE_APPRENANT))
	apprenant.Get("/", controllers.HandleOrgShow)
	registerContentRoutes(apprenant, false)
}

// registerContentRoutes wires the org-scoped content endpoints onto a role
// group. Write endpoints are only mounted for content-managing roles; the
// controllers re-check the role anyway.
func registerContentRoutes(g fiber.Router, manage bool) {
	g.Get("/formations", controllers.HandleFormationList)
	g.Get("/formations/:id", controllers.HandleFormationShow)

	g.Get("/pathways", controllers.HandlePathwayList)
	g.Get("/pathways/:id", controllers.HandlePathwayShow)

	g.Get("/resources", controllers.HandleResourceList)
	g.Get("/resources/:id/download", controllers.HandleResourceDownload)

	g.Get("/assessments", controllers.HandleAssessmentList)
	g.Get("/assessments/:id", controllers.HandleAssessmentShow)

	if !manage {
		return
	}

	g.Post("/formations", controllers.HandleFormationCreate)
	g.Put("/formations/:id", controllers.HandleFormationUpdate)
	g.Delete("/formations/:id", controllers.HandleFormationDelete)

	g.Post("/pathways", controllers.HandlePathwayCreate)
	g.Put("/pathways/:id", controllers.HandlePathwayUpdate)
	g.Delete("/pathways/:id", controllers.HandlePathwayDelete)
	g.Post("/pathways/:id/steps", controllers.HandlePathwayAddStep)
	g.Delete("/pathways/:id/steps/:stepId", controllers.HandlePathwayRemoveStep)
	g.Put("/pathways/:id/steps/:stepId/position", controllers.HandlePathwayReorderStep)

	g.Post("/resources", controllers.HandleResourceUpload)
	g.Delete("/resources/:id", controllers.HandleResourceDelete)

	g.Post("/assessments", controllers.HandleAssessmentCreate)
	g.Put("/assessments/:id", controllers.HandleAssessmentUpdate)
	g.Delete("/assessments/:id", controllers.HandleAssessmentDelete)
}
