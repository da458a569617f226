package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ACME", "acme"},
		{"  lycee-jean-moulin  ", "lycee-jean-moulin"},
		{"Formation-2024", "formation-2024"},
		{"acme", "acme"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSlug(tt.in))
	}
}

func TestOrganizationValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{name: "simple", slug: "acme", wantErr: false},
		{name: "hyphenated", slug: "lycee-jean-moulin", wantErr: false},
		{name: "digits", slug: "promo2024", wantErr: false},
		{name: "uppercase rejected", slug: "Acme", wantErr: true},
		{name: "leading hyphen", slug: "-acme", wantErr: true},
		{name: "trailing hyphen", slug: "acme-", wantErr: true},
		{name: "double hyphen", slug: "ac--me", wantErr: true},
		{name: "spaces", slug: "ac me", wantErr: true},
		{name: "empty", slug: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org := Organization{Slug: tt.slug, Name: "Test Org"}
			err := org.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(ROLE_ADMIN))
	assert.True(t, ValidRole(ROLE_FORMATEUR))
	assert.True(t, ValidRole(ROLE_TUTEUR))
	assert.True(t, ValidRole(ROLE_APPRENANT))
	assert.False(t, ValidRole("superadmin"))
	assert.False(t, ValidRole(""))
}

func TestMembershipValidate(t *testing.T) {
	m := &Membership{OrganizationID: 1, UserID: 2, Role: ROLE_TUTEUR}
	assert.NoError(t, m.Validate())

	m.Role = "superadmin"
	assert.ErrorIs(t, m.Validate(), ErrInvalidRole)

	m.Role = ""
	assert.ErrorIs(t, m.Validate(), ErrInvalidRole)
}

func TestCanManageContent(t *testing.T) {
	assert.True(t, CanManageContent(ROLE_ADMIN))
	assert.True(t, CanManageContent(ROLE_FORMATEUR))
	assert.False(t, CanManageContent(ROLE_TUTEUR))
	assert.False(t, CanManageContent(ROLE_APPRENANT))
}
