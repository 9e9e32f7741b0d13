package routeguard_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nestboard/adminsdk/internal/app/routeguard"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "/"},
		{name: "root", in: "/", want: "/"},
		{name: "trailing slash stripped", in: "/admins/", want: "/admins"},
		{name: "multiple trailing slashes", in: "/admins///", want: "/admins"},
		{name: "missing leading slash", in: "admins", want: "/admins"},
		{name: "untouched", in: "/listings/5/edit", want: "/listings/5/edit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, routeguard.NormalizePath(tt.in))
		})
	}
}

func TestRuleset_FindRule(t *testing.T) {
	t.Parallel()

	rules := routeguard.NewRuleset([]routeguard.Rule{
		{ID: "first", Pattern: "/listings/create"},
		{ID: "second", Pattern: "/listings/:id"},
		{ID: "broad", Pattern: "/listings/*"},
		{ID: "param", Pattern: "/admins/:id/edit"},
	})

	tests := []struct {
		name   string
		path   string
		wantID string
		found  bool
	}{
		{name: "exact before param", path: "/listings/create", wantID: "first", found: true},
		{name: "first match wins over wildcard", path: "/listings/42", wantID: "second", found: true},
		{name: "trailing slash equivalent", path: "/listings/create/", wantID: "first", found: true},
		{name: "param segment", path: "/admins/abc/edit", wantID: "param", found: true},
		{name: "no match is unrestricted", path: "/dashboard", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, found := rules.FindRule(tt.path)
			require.Equal(t, tt.found, found)
			if tt.found {
				require.Equal(t, tt.wantID, rule.ID)
			}

			// Pure function: a second lookup yields the same answer.
			again, foundAgain := rules.FindRule(tt.path)
			require.Equal(t, found, foundAgain)
			require.Equal(t, rule, again)
		})
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	otherID := uuid.New()
	eval := routeguard.NewEvaluator(routeguard.DefaultOverrides())

	tests := []struct {
		name    string
		rule    routeguard.Rule
		subject routeguard.Subject
		target  routeguard.Target
		allowed bool
	}{
		{
			name:    "super admin required and missing",
			rule:    routeguard.Rule{SuperAdminOnly: true},
			subject: routeguard.Subject{UserID: userID},
			allowed: false,
		},
		{
			name:    "super admin required and held",
			rule:    routeguard.Rule{SuperAdminOnly: true},
			subject: routeguard.Subject{UserID: userID, SuperAdmin: true},
			allowed: true,
		},
		{
			name:    "module permission held",
			rule:    routeguard.Rule{Module: "listings", Action: routeguard.ActionUpdate},
			subject: routeguard.Subject{UserID: userID, Permissions: []string{"listings.update"}},
			allowed: true,
		},
		{
			name:    "module permission missing",
			rule:    routeguard.Rule{Module: "listings", Action: routeguard.ActionUpdate},
			subject: routeguard.Subject{UserID: userID, Permissions: []string{"listings.read"}},
			allowed: false,
		},
		{
			name:    "action defaults to read",
			rule:    routeguard.Rule{Module: "listings"},
			subject: routeguard.Subject{UserID: userID, Permissions: []string{"listings.read"}},
			allowed: true,
		},
		{
			name:    "any-of alternative",
			rule:    routeguard.Rule{Module: "ai_models", Action: routeguard.ActionManage, AnyPermissions: []string{"settings.manage"}},
			subject: routeguard.Subject{UserID: userID, Permissions: []string{"settings.manage"}},
			allowed: true,
		},
		{
			name:    "self edit bypass",
			rule:    routeguard.Rule{Module: "admin", Action: routeguard.ActionUpdate},
			subject: routeguard.Subject{UserID: userID},
			target:  routeguard.Target{UserID: userID},
			allowed: true,
		},
		{
			name:    "self edit bypass only for own profile",
			rule:    routeguard.Rule{Module: "admin", Action: routeguard.ActionUpdate},
			subject: routeguard.Subject{UserID: userID},
			target:  routeguard.Target{UserID: otherID},
			allowed: false,
		},
		{
			name:    "resource ownership",
			rule:    routeguard.Rule{Module: "listings", Action: routeguard.ActionUpdate},
			subject: routeguard.Subject{UserID: userID},
			target:  routeguard.Target{OwnerID: userID},
			allowed: true,
		},
		{
			name:    "media read via manage fallback",
			rule:    routeguard.Rule{Module: "media", Action: routeguard.ActionRead},
			subject: routeguard.Subject{UserID: userID, Permissions: []string{"media.manage"}},
			allowed: true,
		},
		{
			name:    "manage fallback does not cover media delete",
			rule:    routeguard.Rule{Module: "media", Action: routeguard.ActionDelete},
			subject: routeguard.Subject{UserID: userID, Permissions: []string{"media.manage"}},
			allowed: false,
		},
		{
			name:    "no module restriction after super admin gate",
			rule:    routeguard.Rule{SuperAdminOnly: true},
			subject: routeguard.Subject{UserID: userID, SuperAdmin: true, Permissions: nil},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := eval.Evaluate(tt.rule, tt.subject, tt.target)
			require.Equal(t, tt.allowed, decision.Allowed, decision.Reason)
		})
	}
}

func TestRule_PermissionString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "listings.read", routeguard.Rule{Module: "listings"}.PermissionString())
	require.Equal(t, "listings.delete", routeguard.Rule{Module: "listings", Action: routeguard.ActionDelete}.PermissionString())
}
