package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agencydesk/internal/domain/permission"
	appLogger "agencydesk/internal/shared/logger"
)

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e, err := NewEnforcer(nil, appLogger.Nop())
	require.NoError(t, err)

	tests := []struct {
		role     string
		resource permission.Resource
		action   permission.Action
		want     bool
	}{
		{"user", permission.ResourceTicket, permission.ActionCreate, true},
		{"user", permission.ResourceTicket, permission.ActionDelete, false},
		{"user", permission.ResourceResource, permission.ActionCreate, false},
		{"user", permission.ResourceSubmission, permission.ActionReview, false},
		{"admin", permission.ResourceTicket, permission.ActionCreate, true},
		{"admin", permission.ResourceResource, permission.ActionDelete, true},
		{"admin", permission.ResourceSubmission, permission.ActionReview, true},
		{"admin", permission.ResourceUser, permission.ActionCreate, false},
		{"super_admin", permission.ResourceUser, permission.ActionDelete, true},
		{"super_admin", permission.ResourceDashboard, permission.ActionRead, true},
		{"guest", permission.ResourceDashboard, permission.ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+string(tt.resource)+"/"+string(tt.action), func(t *testing.T) {
			ok, err := e.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEnforcer_AddRemovePolicy(t *testing.T) {
	e, err := NewEnforcer(nil, appLogger.Nop())
	require.NoError(t, err)

	require.NoError(t, e.AddPolicy("user", permission.ResourceResource, permission.ActionCreate))
	ok, err := e.Enforce("user", permission.ResourceResource, permission.ActionCreate)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, e.RemovePolicy("user", permission.ResourceResource, permission.ActionCreate))
	ok, err = e.Enforce("user", permission.ResourceResource, permission.ActionCreate)
	require.NoError(t, err)
	assert.False(t, ok)

	perms, err := e.GetPermissionsForRole("admin")
	require.NoError(t, err)
	assert.Greater(t, len(perms), len(grant("admin", permission.ResourceTicket, permission.ActionUpdate)))
}

func TestEnforcer_PersistsWithGormAdapter(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	_, err = NewEnforcer(db, appLogger.Nop())
	require.NoError(t, err)

	// a second enforcer reads the saved rules instead of re-seeding
	reopened, err := NewEnforcer(db, appLogger.Nop())
	require.NoError(t, err)
	ok, err := reopened.Enforce("super_admin", permission.ResourceBrand, permission.ActionDelete)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, reopened.LoadPolicy())
}
