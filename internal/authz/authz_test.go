package authz

import (
	"testing"

	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	tests := []struct {
		name   string
		role   models.Role
		path   string
		method string
		want   bool
	}{
		{name: "user reports", role: models.RoleUser, path: "/api/v1/incidents", method: "POST", want: true},
		{name: "user cannot list all", role: models.RoleUser, path: "/api/v1/incidents", method: "GET", want: false},
		{name: "user volunteers", role: models.RoleUser, path: "/api/v1/incidents/0b5e/volunteer", method: "POST", want: true},
		{name: "user withdraws", role: models.RoleUser, path: "/api/v1/coins/withdraw", method: "POST", want: true},
		{name: "user cannot delete coins", role: models.RoleUser, path: "/api/v1/coins/balance", method: "DELETE", want: false},
		{name: "user marks read", role: models.RoleUser, path: "/api/v1/notifications/read", method: "PATCH", want: true},
		{name: "responder inherits user", role: models.RoleResponder, path: "/api/v1/incidents/abc/approve", method: "PUT", want: true},
		{name: "responder cannot list all", role: models.RoleResponder, path: "/api/v1/incidents", method: "GET", want: false},
		{name: "admin lists all", role: models.RoleAdmin, path: "/api/v1/incidents", method: "GET", want: true},
		{name: "unknown role", role: "guest", path: "/api/v1/incidents/active", method: "GET", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := a.Allowed(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
