package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydesk/internal/application/store"
	"agencydesk/internal/application/store/storetest"
	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/notification"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/id"
	"agencydesk/internal/shared/logger"
)

var bootstrap = []user.User{
	{ID: "1", Username: "admin", Email: "admin@agency.test", Role: user.RoleSuperAdmin, Department: user.DepartmentMarketing, BrandIDs: []string{"1", "2"}},
	{ID: "2", Username: "manager", Email: "manager@agency.test", Role: user.RoleAdmin, Department: user.DepartmentContent, BrandIDs: []string{"1"}},
}

func newTestService(t *testing.T) (*Service, *storetest.Notifier) {
	t.Helper()
	n := &storetest.Notifier{}
	st := store.New(Kind(bootstrap), storetest.NewSlots(), n,
		store.WithIDs[user.User](id.NewSequence("u")),
		store.WithLogger[user.User](logger.Nop()),
	)
	require.NoError(t, st.Load(context.Background()))
	return NewService(st, logger.Nop()), n
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     CreateUserCommand
		wantErr func(error) bool
	}{
		{
			name: "valid",
			cmd:  CreateUserCommand{Username: "awa", Email: "awa@agency.test", Role: user.RoleUser, Department: user.DepartmentDesign},
		},
		{
			name:    "bad email",
			cmd:     CreateUserCommand{Username: "awa", Email: "awa", Role: user.RoleUser, Department: user.DepartmentDesign},
			wantErr: errors.IsValidationError,
		},
		{
			name:    "unknown role",
			cmd:     CreateUserCommand{Username: "awa", Email: "awa@agency.test", Role: "owner", Department: user.DepartmentDesign},
			wantErr: errors.IsValidationError,
		},
		{
			name:    "unknown department",
			cmd:     CreateUserCommand{Username: "awa", Email: "awa@agency.test", Role: user.RoleUser, Department: "finance"},
			wantErr: errors.IsValidationError,
		},
		{
			name:    "duplicate email",
			cmd:     CreateUserCommand{Username: "boss", Email: "ADMIN@agency.test", Role: user.RoleUser, Department: user.DepartmentDesign},
			wantErr: errors.IsConflictError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, n := newTestService(t)

			u, err := svc.Create(context.Background(), tt.cmd)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Len(t, svc.List(), 2)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, u.BrandIDs)
			assert.Len(t, svc.List(), 3)

			last := n.Last()
			assert.Equal(t, notification.TypeUser, last.Type)
			assert.Equal(t, "User awa has been added", last.Message)
			assert.Equal(t, "/settings", last.Link)
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, n := newTestService(t)
	name := "lead"
	brands := []string{"2"}

	u, err := svc.Update(context.Background(), "2", user.Patch{Username: &name, BrandIDs: &brands})
	require.NoError(t, err)
	assert.Equal(t, "lead", u.Username)
	assert.Equal(t, user.RoleAdmin, u.Role)
	assert.True(t, u.ManagesBrand("2"))
	assert.False(t, u.ManagesBrand("1"))
	assert.Equal(t, "User manager has been updated", n.Last().Message)

	taken := "admin@agency.test"
	_, err = svc.Update(context.Background(), "2", user.Patch{Email: &taken})
	assert.True(t, errors.IsConflictError(err))

	own := "MANAGER@agency.test"
	_, err = svc.Update(context.Background(), "2", user.Patch{Email: &own})
	assert.NoError(t, err)
}

func TestFindByEmail(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.FindByEmail("Manager@Agency.test")
	require.NoError(t, err)
	assert.Equal(t, "2", u.ID)

	_, err = svc.FindByEmail("ghost@agency.test")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDelete(t *testing.T) {
	svc, n := newTestService(t)

	require.NoError(t, svc.Delete(context.Background(), "2"))
	assert.False(t, svc.Exists("2"))
	assert.Equal(t, "User removed", n.Last().Title)
	assert.True(t, errors.IsNotFoundError(svc.Delete(context.Background(), "2")))

	self := actor.WithActor(context.Background(), actor.Actor{ID: "1", Role: user.RoleSuperAdmin})
	assert.True(t, errors.IsForbiddenError(svc.Delete(self, "1")))
	assert.True(t, svc.Exists("1"))
}
