package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserHashesPassword(t *testing.T) {
	user, err := CreateUser("Jeanne Martin", "jeanne@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	assert.NotEqual(t, "s3cretpass", user.Password)
	assert.True(t, user.CheckPassword("s3cretpass"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.Equal(t, STATUS_INACTIVE, user.Status)
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "bad email", userName: "Jeanne", email: "not-an-email", password: "s3cretpass"},
		{name: "short password", userName: "Jeanne", email: "jeanne@example.com", password: "abc"},
		{name: "empty name", userName: "", email: "jeanne@example.com", password: "s3cretpass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(tt.userName, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestGenerateActivationToken(t *testing.T) {
	user := User{}
	err := user.GenerateActivationToken()
	if err != nil {
		t.Fatalf("GenerateActivationToken failed: %v", err)
	}

	assert.Len(t, user.ActivationToken, 32)
	assert.NotNil(t, user.ActivationSentAt)

	first := user.ActivationToken
	_ = user.GenerateActivationToken()
	assert.NotEqual(t, first, user.ActivationToken)
}

func TestRandomPasswordIsUnique(t *testing.T) {
	assert.NotEqual(t, RandomPassword(), RandomPassword())
}
