package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"go.uber.org/zap"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/access"
	"github.com/formaflow/formaflow/internal/pkg/env"
	"github.com/formaflow/formaflow/internal/pkg/hcaptcha"
	"github.com/formaflow/formaflow/internal/pkg/logging"
	"github.com/formaflow/formaflow/internal/pkg/mail"
	"github.com/formaflow/formaflow/internal/pkg/session"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// HandleAuthLogin authenticates the user and seeds the session. On success
// the user lands on the home route of their resolved role.
func HandleAuthLogin(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	repos := repository.GetGlobalRepositories()

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := repos.User.GetByEmail(c.FormValue("email"))
	if err != nil {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if !user.CheckPassword(c.FormValue("password")) {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if !user.IsActive() {
		fm["message"] = "Merci d'activer ton compte via le lien reçu par email"

		return flash.WithError(c, fm).Redirect("/login")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUserName, user.Name)
	sess.Set(usercontext.KeyIsSuperAdmin, user.IsSuperAdmin)

	if err = sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = repos.User.Update(user)

	fm = fiber.Map{
		"type":    "success",
		"message": "Bienvenue ! Bonne formation.",
	}

	// Land the user directly on their role area when a membership resolves.
	resolver := access.NewResolver(repos.Organization, repos.Membership, access.StrategyMostRecent, logging.GetLogger())
	if res, rerr := resolver.Resolve(user.ID); rerr == nil {
		if target, ok := access.RoleRoute(res.Role); ok {
			return flash.WithSuccess(c, fm).Redirect(target)
		}
	}

	return flash.WithSuccess(c, fm).Redirect("/")
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err = sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "À bientôt !",
	}

	c.Locals(usercontext.KeyFromProtected, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleAuthRegister creates an inactive account and mails the activation link.
func HandleAuthRegister(c *fiber.Ctx) error {
	hcaptchaToken := c.FormValue("h-captcha-response")
	valid, err := hcaptcha.Verify(hcaptchaToken)
	if err != nil || !valid {
		errorMsg := "Captcha validation failed. Please try again."
		if err != nil && env.IsDev() {
			errorMsg = fmt.Sprintf("Captcha validation failed: %v", err)
		}

		fm := fiber.Map{
			"type":    "error",
			"message": errorMsg,
		}
		return flash.WithError(c, fm).Redirect("/login")
	}

	user, err := models.CreateUser(c.FormValue("username"), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/login")
	}

	user.Status = models.STATUS_INACTIVE
	if err = user.GenerateActivationToken(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err = repository.GetGlobalRepositories().User.Create(user); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/login")
	}

	go func(u models.User) {
		if mailErr := mail.SendActivationMail(u.Email, u.Name, u.ActivationToken); mailErr != nil {
			logging.GetLogger().Warn("activation mail failed", zap.Error(mailErr))
		}
	}(*user)

	fm := fiber.Map{
		"type":    "success",
		"message": "Ton compte est créé ! Vérifie ta boîte mail pour l'activer.",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleAuthActivate consumes the activation token from the mail link.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		fm := fiber.Map{"type": "error", "message": "Lien d'activation invalide"}
		return flash.WithError(c, fm).Redirect("/login")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByActivationToken(token)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Lien d'activation invalide ou expiré"}
		return flash.WithError(c, fm).Redirect("/login")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err = repos.User.Update(user); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/login")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Compte activé, tu peux te connecter.",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}
