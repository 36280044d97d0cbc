package rbac

import (
	"log/slog"
	"strings"

	"github.com/casbin/casbin/v2"
)

// CasbinPolicy wraps a Casbin enforcer so deployments can override the
// built-in grants with model/policy files.
type CasbinPolicy struct {
	enforcer *casbin.Enforcer
}

func NewCasbinPolicy(modelPath, policyPath string) (*CasbinPolicy, error) {
	e, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, err
	}
	return &CasbinPolicy{enforcer: e}, nil
}

// Can checks whether sub holds perm. Permissions use the "<resource>:<action>"
// form; they are split into (obj, act) for the enforcer.
func (p *CasbinPolicy) Can(sub, perm string) bool {
	obj, act := parsePermission(perm)
	allowed, err := p.enforcer.Enforce(sub, obj, act)
	if err != nil {
		slog.Warn("rbac enforce", "sub", sub, "perm", perm, "error", err)
		return false
	}
	return allowed
}

func parsePermission(perm string) (string, string) {
	if perm == "*" {
		return "*", "*"
	}
	if i := strings.Index(perm, ":"); i >= 0 {
		return perm[:i], perm[i+1:]
	}
	return perm, "*"
}
