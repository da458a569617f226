package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHandleAuthRegisterCaptchaFailureRedirectsToLogin(t *testing.T) {
	app := fiber.New()
	app.Post("/register", HandleAuthRegister)

	// No captcha token at all: verification fails before anything is persisted.
	req := httptest.NewRequest("POST", "/register", strings.NewReader("username=jean&email=jean%40example.com&password=secret123"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
