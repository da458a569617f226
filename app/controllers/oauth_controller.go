package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/session"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// HandleOAuthLogin starts the provider flow (Google / Microsoft).
func HandleOAuthLogin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the provider flow and logs the user in.
// Accounts are matched by email; unknown emails get a fresh active account
// with a placeholder password (never usable for form login).
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	repos := repository.GetGlobalRepositories()

	var appUser *models.User
	if u.Email != "" {
		appUser, _ = repos.User.GetByEmail(u.Email)
	}

	if appUser == nil {
		placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
		hash, _ := models.HashPassword(placeholder)
		email := u.Email
		if email == "" {
			// Unique, non-empty email to satisfy the unique index
			email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
		}
		appUser = &models.User{
			Name:      firstNonEmpty(u.Name, u.NickName, u.Email, "User"),
			Email:     email,
			Password:  hash,
			AvatarURL: u.AvatarURL,
			Status:    models.STATUS_ACTIVE,
		}
		if err := repos.User.Create(appUser); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create user failed: %v", err))
		}
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("session failed: %v", err))
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, appUser.ID)
	sess.Set(usercontext.KeyUserName, appUser.Name)
	sess.Set(usercontext.KeyIsSuperAdmin, appUser.IsSuperAdmin)

	if err = sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("session failed: %v", err))
	}

	now := time.Now()
	appUser.LastLoginAt = &now
	_ = repos.User.Update(appUser)

	return c.Redirect("/", fiber.StatusSeeOther)
}
