package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles supplied by the identity layer. The set is closed; policies are
// seeded in code rather than managed through an admin surface.
const (
	RoleAdmin     = "admin"
	RoleHRManager = "hr_manager"
	RoleHR        = "hr"
	RoleTeamLead  = "team_lead"
	RoleEmployee  = "employee"
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
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	// Role inheritance: admin > hr_manager > hr > employee, team_lead > employee
	groupings := [][]string{
		{RoleAdmin, RoleHRManager},
		{RoleHRManager, RoleHR},
		{RoleHR, RoleEmployee},
		{RoleTeamLead, RoleEmployee},
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	policies := [][]string{
		{RoleEmployee, "employee", "read"},
		{RoleHR, "employee", "create"},
		{RoleHR, "employee", "update"},
		{RoleHR, "employee", "delete"},

		{RoleEmployee, "working-days", "read"},
		{RoleHR, "working-days", "update"},

		{RoleEmployee, "leave-type", "read"},

		{RoleEmployee, "leave-balance", "read"},
		{RoleAdmin, "leave-balance", "cleanup"},

		{RoleEmployee, "leave-request", "create"},
		{RoleEmployee, "leave-request", "read"},
		{RoleTeamLead, "leave-request", "decide-lead"},
		{RoleHR, "leave-request", "decide-hr"},

		{RoleEmployee, "salary-slip", "read"},
		{RoleHR, "salary-slip", "create"},

		{RoleEmployee, "deduction", "read"},
		{RoleHR, "deduction", "create"},
		{RoleHR, "deduction", "update"},
		{RoleHR, "deduction", "delete"},

		{RoleEmployee, "calendar", "read"},
		{RoleHR, "calendar", "create"},
		{RoleHR, "calendar", "update"},
		{RoleHR, "calendar", "delete"},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
