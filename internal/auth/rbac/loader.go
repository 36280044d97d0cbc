package rbac

import "errors"

// Load builds the policy for the server: Casbin files when both paths are
// set, otherwise the built-in default grants.
func Load(modelPath, policyPath string) (PolicyInterface, error) {
	if modelPath == "" || policyPath == "" {
		if modelPath != policyPath {
			return nil, errors.New("rbac model and policy must be configured together")
		}
		return DefaultPolicy(), nil
	}
	return NewCasbinPolicy(modelPath, policyPath)
}
