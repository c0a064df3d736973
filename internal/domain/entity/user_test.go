package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityRoles(t *testing.T) {
	admin := &Identity{Role: RoleAdmin}
	analyst := &Identity{Role: RoleAnalyst}
	var anonymous *Identity

	assert.True(t, admin.IsAdmin())
	assert.False(t, analyst.IsAdmin())
	assert.False(t, anonymous.IsAdmin())

	assert.True(t, analyst.HasRole(RoleAdmin, RoleAnalyst))
	assert.False(t, anonymous.HasRole(RoleAnalyst))
}

func TestMenuSectionsByRole(t *testing.T) {
	assert.Equal(t, []string{"dashboard", "reportes", "incidencias"}, (&Identity{Role: RoleAnalyst}).MenuSections())
	assert.Contains(t, (&Identity{Role: RoleAdmin}).MenuSections(), "importar")
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("admin"))
	assert.False(t, ValidRole("root"))
}
