package routeguard

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var ErrInvalidAction = fmt.Errorf("invalid action")

// Subject is the authenticated user a decision is made for.
type Subject struct {
	UserID      uuid.UUID
	SuperAdmin  bool
	Permissions []string
}

func (s Subject) HasPermission(permission string) bool {
	return lo.Contains(s.Permissions, permission)
}

// Target identifies the resource behind the path, when the route addresses
// one: the user a profile route points at, or the owner of a record.
type Target struct {
	UserID  uuid.UUID
	OwnerID uuid.UUID
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// OverridePredicate short-circuits the default module.action check when it
// answers true. Predicates run in registration order before the default
// check and are independently testable.
type OverridePredicate struct {
	Name   string
	Allows func(rule Rule, subject Subject, target Target) bool
}

// SelfEditOverride lets a user pass the admin-module update gate for their
// own profile.
func SelfEditOverride() OverridePredicate {
	return OverridePredicate{
		Name: "self_edit",
		Allows: func(rule Rule, subject Subject, target Target) bool {
			return rule.Module == "admin" &&
				rule.Action == ActionUpdate &&
				subject.UserID != uuid.Nil &&
				subject.UserID == target.UserID
		},
	}
}

// OwnershipOverride allows access when the subject owns the target resource.
func OwnershipOverride() OverridePredicate {
	return OverridePredicate{
		Name: "resource_ownership",
		Allows: func(rule Rule, subject Subject, target Target) bool {
			return subject.UserID != uuid.Nil && subject.UserID == target.OwnerID
		},
	}
}

// ManageFallbackOverride lets a broader "<module>.manage" permission satisfy
// a media read gate.
func ManageFallbackOverride() OverridePredicate {
	return OverridePredicate{
		Name: "media_manage_fallback",
		Allows: func(rule Rule, subject Subject, target Target) bool {
			if rule.Module != "media" {
				return false
			}
			action := rule.Action
			if action == "" {
				action = ActionRead
			}
			return action == ActionRead && subject.HasPermission(rule.Module+"."+ActionManage.String())
		},
	}
}

func DefaultOverrides() []OverridePredicate {
	return []OverridePredicate{
		SelfEditOverride(),
		OwnershipOverride(),
		ManageFallbackOverride(),
	}
}

// Evaluator decides allow/deny for a matched rule. It is pure and
// synchronous: same inputs, same decision, no side effects.
type Evaluator struct {
	overrides []OverridePredicate
}

func NewEvaluator(overrides []OverridePredicate) *Evaluator {
	copied := make([]OverridePredicate, len(overrides))
	copy(copied, overrides)

	return &Evaluator{overrides: copied}
}

// Evaluate applies the guard algorithm: super-admin gate first, then the
// ordered overrides, then the module.action permission with its any-of
// alternatives. A rule without a module that passed the super-admin gate
// allows.
func (e *Evaluator) Evaluate(rule Rule, subject Subject, target Target) Decision {
	if rule.SuperAdminOnly && !subject.SuperAdmin {
		return deny("super admin required")
	}

	if rule.Module == "" {
		return allow("no module restriction")
	}

	for _, override := range e.overrides {
		if override.Allows(rule, subject, target) {
			return allow(override.Name)
		}
	}

	if subject.HasPermission(rule.PermissionString()) {
		return allow("permission " + rule.PermissionString())
	}

	for _, permission := range rule.AnyPermissions {
		if subject.HasPermission(permission) {
			return allow("permission " + permission)
		}
	}

	return deny("missing permission " + rule.PermissionString())
}
