package routeguard

import (
	"strings"
)

// Action is the operation a route needs on its module.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) Validate() error {
	switch a {
	case ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionManage:
		return nil
	default:
		return ErrInvalidAction
	}
}

// Rule maps a path pattern to the permission a view requires. Patterns are
// segment-wise: ":param" matches any single segment, a trailing "*" matches
// the rest of the path.
type Rule struct {
	ID             string
	Pattern        string
	Module         string
	Action         Action
	AnyPermissions []string
	SuperAdminOnly bool
}

// PermissionString is the module-scoped permission the rule's default check
// requires, e.g. "listings.update". Falls back to read when no action is set.
func (r Rule) PermissionString() string {
	action := r.Action
	if action == "" {
		action = ActionRead
	}
	return r.Module + "." + action.String()
}

// Ruleset is an ordered, immutable rule table. Evaluation is declaration
// order, first match wins.
type Ruleset struct {
	rules []Rule
}

func NewRuleset(rules []Rule) *Ruleset {
	copied := make([]Rule, len(rules))
	copy(copied, rules)

	return &Ruleset{rules: copied}
}

// NormalizePath maps empty paths to "/" and strips any trailing slash beyond
// the root, so "/admins/" and "/admins" address the same rule.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}

	return path
}

// FindRule returns the first rule whose pattern matches the normalized path.
// No match means the path carries no restriction; callers treat that as allow.
func (s *Ruleset) FindRule(path string) (Rule, bool) {
	path = NormalizePath(path)
	for _, rule := range s.rules {
		if matchPattern(rule.Pattern, path) {
			return rule, true
		}
	}

	return Rule{}, false
}

func matchPattern(pattern, path string) bool {
	patternSegs := strings.Split(NormalizePath(pattern), "/")
	pathSegs := strings.Split(path, "/")

	for i, seg := range patternSegs {
		if seg == "*" && i == len(patternSegs)-1 {
			return true
		}
		if i >= len(pathSegs) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			if pathSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}

	return len(patternSegs) == len(pathSegs)
}
