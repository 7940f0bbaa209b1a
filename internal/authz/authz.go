// Package authz - проверка прав доступа к маршрутам API по роли пользователя.
package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/shenikar/rescue_chain/internal/models"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// Роль responder наследует права user, admin наследует все
var rolePolicy = [][]string{
	{string(models.RoleUser), "/api/v1/incidents", "POST"},
	{string(models.RoleUser), "/api/v1/incidents/active", "GET"},
	{string(models.RoleUser), "/api/v1/incidents/pending", "GET"},
	{string(models.RoleUser), "/api/v1/incidents/mine", "GET"},
	{string(models.RoleUser), "/api/v1/incidents/stats", "GET"},
	{string(models.RoleUser), "/api/v1/incidents/volunteer/history", "GET"},
	{string(models.RoleUser), "/api/v1/incidents/:id", "GET"},
	{string(models.RoleUser), "/api/v1/incidents/:id/media", "POST"},
	{string(models.RoleUser), "/api/v1/incidents/:id/volunteer", "POST"},
	{string(models.RoleUser), "/api/v1/incidents/:id/volunteer/status", "PUT"},
	{string(models.RoleUser), "/api/v1/incidents/:id/complete", "PUT"},
	{string(models.RoleUser), "/api/v1/incidents/:id/approve", "PUT"},
	{string(models.RoleUser), "/api/v1/coins/*", "(GET)|(PUT)|(POST)"},
	{string(models.RoleUser), "/api/v1/notifications", "GET"},
	{string(models.RoleUser), "/api/v1/notifications/*", "PATCH"},
	{string(models.RoleAdmin), "/api/v1/*", ".*"},
}

var roleInheritance = [][]string{
	{string(models.RoleResponder), string(models.RoleUser)},
	{string(models.RoleAdmin), string(models.RoleResponder)},
}

// Authorizer решает, может ли роль выполнить действие над маршрутом
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// New создает Authorizer со встроенной политикой ролей
func New() (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}
	if _, err := e.AddPolicies(rolePolicy); err != nil {
		return nil, fmt.Errorf("failed to load role policy: %w", err)
	}
	if _, err := e.AddGroupingPolicies(roleInheritance); err != nil {
		return nil, fmt.Errorf("failed to load role inheritance: %w", err)
	}
	return &Authorizer{enforcer: e}, nil
}

// Allowed проверяет доступ роли к пути с методом
func (a *Authorizer) Allowed(role models.Role, path, method string) (bool, error) {
	ok, err := a.enforcer.Enforce(string(role), path, method)
	if err != nil {
		return false, fmt.Errorf("failed to enforce policy: %w", err)
	}
	return ok, nil
}
