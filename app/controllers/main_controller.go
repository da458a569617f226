package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"go.uber.org/zap"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/access"
	"github.com/formaflow/formaflow/internal/pkg/logging"
	"github.com/formaflow/formaflow/internal/pkg/mail"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// HandleHome sends logged-in users to their role area.
func HandleHome(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if target, ok := access.RoleRoute(userCtx.Role); ok {
		return c.Redirect(target, fiber.StatusSeeOther)
	}
	// Logged in but no membership anywhere.
	return c.Redirect("/unauthorized", fiber.StatusSeeOther)
}

func HandleUnauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   "forbidden",
		"message": "Tu n'as pas accès à cette zone",
	})
}

// HandleForgotPassword mails a reset link. The response never discloses
// whether the email exists.
func HandleForgotPassword(c *fiber.Ctx) error {
	email := c.FormValue("email")

	fm := fiber.Map{
		"type":    "success",
		"message": "Si un compte existe pour cette adresse, un email a été envoyé.",
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByEmail(email)
	if err == nil {
		if err = user.GenerateActivationToken(); err == nil {
			if err = repos.User.Update(user); err == nil {
				go func(u models.User) {
					if mailErr := mail.SendPasswordResetMail(u.Email, u.Name, u.ActivationToken); mailErr != nil {
						logging.GetLogger().Warn("reset mail failed", zap.Error(mailErr))
					}
				}(*user)
			}
		}
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleResetPassword consumes the token from the reset link and sets the
// new password. Invited users land here via /create-password as well.
func HandleResetPassword(c *fiber.Ctx) error {
	token := c.FormValue("token")
	password := c.FormValue("password")

	fm := fiber.Map{
		"type": "error",
	}

	if token == "" || password == "" {
		fm["message"] = "Lien invalide ou mot de passe manquant"
		return flash.WithError(c, fm).Redirect("/login")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByActivationToken(token)
	if err != nil {
		fm["message"] = "Lien invalide ou expiré"
		return flash.WithError(c, fm).Redirect("/login")
	}

	if err = user.SetPassword(password); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/login")
	}

	user.ActivationToken = ""
	user.Status = models.STATUS_ACTIVE
	if err = repos.User.Update(user); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Mot de passe mis à jour, tu peux te connecter.",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}
