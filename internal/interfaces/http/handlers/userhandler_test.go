package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appuser "agencydesk/internal/application/user"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/interfaces/http/handlers/testutil"
	"agencydesk/internal/shared/errors"
)

func TestUserHandler_CreateUser(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "duplicate email", err: errors.NewConflictError("email already in use"), wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got appuser.CreateUserCommand
			svc := &mockUserService{
				createFn: func(_ context.Context, cmd appuser.CreateUserCommand) (user.User, error) {
					got = cmd
					return user.User{ID: "4", Username: cmd.Username}, tt.err
				},
			}
			h := NewUserHandler(svc, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/users", map[string]any{
				"username":   "designer",
				"email":      "designer@example.com",
				"role":       "user",
				"department": "design",
				"brandIds":   []string{"2"},
			})
			testutil.SetAuthContext(c, "1", user.RoleSuperAdmin)

			h.CreateUser(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, user.RoleUser, got.Role)
			assert.Equal(t, []string{"2"}, got.BrandIDs)
		})
	}
}

func TestUserHandler_DeleteUser_Self(t *testing.T) {
	svc := &mockUserService{
		deleteFn: func(context.Context, string) error {
			return errors.NewForbiddenError("you cannot delete your own account")
		},
	}
	h := NewUserHandler(svc, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodDelete, "/users/1", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, "1", user.RoleSuperAdmin)

	h.DeleteUser(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "you cannot delete your own account", resp.Error.Message)
}
