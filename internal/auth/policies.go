package auth

import (
	"fmt"
	"wonders-cms/internal/logger"

	"github.com/casbin/casbin/v2"
)

// publicPaths are readable without a token.
var publicPaths = []string{
	"/healthz",
	"/uploads/*",
	"/home",
	"/home/*",
	"/jelajahi/*",
	"/kuliner/*",
	"/event/*",
	"/wisata/*",
	"/things-to-do/*",
	"/hero/*",
}

// SeedDefaultPolicies ensures that the application has a baseline set of authorization rules.
// It checks if each default policy exists before adding it, making the operation idempotent
// and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	var policies [][]string
	for _, p := range publicPaths {
		policies = append(policies, []string{RoleAnonymous, p, "GET"})
	}
	policies = append(policies,
		[]string{RoleAnonymous, "/admin/auth/login", "POST"},
		// Administrators manage everything.
		[]string{RoleAdmin, "/*", "GET|POST|PUT|DELETE"},
	)

	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	if has, _ := e.HasRoleForUser(RoleAdmin, RoleAnonymous); !has {
		if _, err := e.AddRoleForUser(RoleAdmin, RoleAnonymous); err != nil {
			log.Error(err, "Failed to add role 'admin' -> 'anonymous'")
		}
	}
	log.Info("Policy seeding complete.")
}
