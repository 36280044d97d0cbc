package rbac

// PolicyInterface is the authorization check consulted by HTTP handlers.
// Subjects are "user:<email>" or "role:<cargo>".
type PolicyInterface interface {
	Can(sub, perm string) bool
}

// Policy is the built-in in-memory policy.
type Policy struct {
	// allow[sub][permission] = true
	allow map[string]map[string]bool
}

func NewPolicy() *Policy { return &Policy{allow: map[string]map[string]bool{}} }

func (p *Policy) Grant(sub, perm string) {
	m := p.allow[sub]
	if m == nil {
		m = map[string]bool{}
		p.allow[sub] = m
	}
	m[perm] = true
}

func (p *Policy) Can(sub, perm string) bool {
	if m := p.allow[sub]; m != nil {
		if m[perm] {
			return true
		}
		if m["*"] {
			return true
		}
	}
	return false
}

// DefaultPolicy grants the fixed two-role matrix: supervisors can do
// everything; alunos get the authenticated self-service surface.
func DefaultPolicy() *Policy {
	p := NewPolicy()
	p.Grant("role:supervisor", "*")
	for _, perm := range []string{
		"enrollments:self",
		"certificates:read-self",
		"records:read",
		"rooms:read",
	} {
		p.Grant("role:aluno", perm)
	}
	return p
}
