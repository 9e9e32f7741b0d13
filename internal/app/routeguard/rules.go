package routeguard

// DefaultRules is the dashboard's static route table. Order matters: the
// first matching pattern wins, so item-level rules precede their list rules
// only where their requirement differs.
func DefaultRules() []Rule {
	return []Rule{
		{ID: "admins-create", Pattern: "/admins/create", Module: "admin", Action: ActionCreate},
		{ID: "admins-edit", Pattern: "/admins/:id/edit", Module: "admin", Action: ActionUpdate},
		{ID: "admins", Pattern: "/admins/*", Module: "admin", Action: ActionRead},
		{ID: "roles", Pattern: "/roles/*", SuperAdminOnly: true},
		{ID: "listings-create", Pattern: "/listings/create", Module: "listings", Action: ActionCreate},
		{ID: "listings-edit", Pattern: "/listings/:id/edit", Module: "listings", Action: ActionUpdate},
		{ID: "listings", Pattern: "/listings/*", Module: "listings", Action: ActionRead},
		{ID: "portfolios-create", Pattern: "/portfolios/create", Module: "portfolios", Action: ActionCreate},
		{ID: "portfolios-edit", Pattern: "/portfolios/:id/edit", Module: "portfolios", Action: ActionUpdate},
		{ID: "portfolios", Pattern: "/portfolios/*", Module: "portfolios", Action: ActionRead},
		{ID: "blogs-create", Pattern: "/blogs/create", Module: "blogs", Action: ActionCreate},
		{ID: "blogs-edit", Pattern: "/blogs/:id/edit", Module: "blogs", Action: ActionUpdate},
		{ID: "blogs", Pattern: "/blogs/*", Module: "blogs", Action: ActionRead},
		{ID: "inbox", Pattern: "/inbox/*", Module: "inbox", Action: ActionRead},
		{
			ID: "ai-models", Pattern: "/ai-models/*", Module: "ai_models", Action: ActionManage,
			AnyPermissions: []string{"settings.manage"},
		},
		{ID: "pages-edit", Pattern: "/pages/:slug/edit", Module: "pages", Action: ActionUpdate},
		{ID: "pages", Pattern: "/pages/*", Module: "pages", Action: ActionRead},
		{ID: "media", Pattern: "/media/*", Module: "media", Action: ActionRead},
		{ID: "settings", Pattern: "/settings/*", SuperAdminOnly: true},
	}
}
