package admin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/nestboard/adminsdk/internal/app/api"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	if apiClient == nil {
		panic("admin.NewClient: nil api client")
	}
	return &Client{api: apiClient}
}

func (c *Client) List(ctx context.Context, page api.Page, search string) ([]Admin, api.Pagination, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}

	items, pagination, err := api.List[Admin](ctx, c.api, c.api.AdminPath("admins"), page, query)
	if err != nil {
		return nil, api.Pagination{}, fmt.Errorf("admin.Client.List: %w", err)
	}

	return items, pagination, nil
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (Admin, error) {
	item, err := api.One[Admin](ctx, c.api, c.api.AdminPath("admins", id.String()))
	if err != nil {
		return Admin{}, fmt.Errorf("admin.Client.Get: %w", err)
	}

	return item, nil
}

func (c *Client) Create(ctx context.Context, req CreateReq) (Admin, error) {
	item, err := api.Create[Admin](ctx, c.api, c.api.AdminPath("admins"), req)
	if err != nil {
		return Admin{}, fmt.Errorf("admin.Client.Create: %w", err)
	}

	return item, nil
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, req UpdateReq) (Admin, error) {
	item, err := api.Update[Admin](ctx, c.api, c.api.AdminPath("admins", id.String()), req)
	if err != nil {
		return Admin{}, fmt.Errorf("admin.Client.Update: %w", err)
	}

	return item, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	if err := api.Remove(ctx, c.api, c.api.AdminPath("admins", id.String()), nil); err != nil {
		return fmt.Errorf("admin.Client.Delete: %w", err)
	}

	return nil
}

// SetRoles replaces the admin's role assignment.
func (c *Client) SetRoles(ctx context.Context, id uuid.UUID, roles []Role) (Admin, error) {
	body := map[string][]int64{
		"role_ids": lo.Map(roles, func(r Role, _ int) int64 { return r.ID }),
	}
	item, err := api.Update[Admin](ctx, c.api, c.api.AdminPath("admins", id.String(), "roles"), body)
	if err != nil {
		return Admin{}, fmt.Errorf("admin.Client.SetRoles: %w", err)
	}

	return item, nil
}

func (c *Client) ListRoles(ctx context.Context, page api.Page) ([]Role, api.Pagination, error) {
	items, pagination, err := api.List[Role](ctx, c.api, c.api.AdminPath("roles"), page, nil)
	if err != nil {
		return nil, api.Pagination{}, fmt.Errorf("admin.Client.ListRoles: %w", err)
	}

	return items, pagination, nil
}

func (c *Client) CreateRole(ctx context.Context, req RoleReq) (Role, error) {
	role, err := api.Create[Role](ctx, c.api, c.api.AdminPath("roles"), req)
	if err != nil {
		return Role{}, fmt.Errorf("admin.Client.CreateRole: %w", err)
	}

	return role, nil
}

func (c *Client) UpdateRole(ctx context.Context, id int64, req RoleReq) (Role, error) {
	role, err := api.Update[Role](ctx, c.api, c.api.AdminPath("roles", strconv.FormatInt(id, 10)), req)
	if err != nil {
		return Role{}, fmt.Errorf("admin.Client.UpdateRole: %w", err)
	}

	return role, nil
}

func (c *Client) DeleteRole(ctx context.Context, id int64) error {
	if err := api.Remove(ctx, c.api, c.api.AdminPath("roles", strconv.FormatInt(id, 10)), nil); err != nil {
		return fmt.Errorf("admin.Client.DeleteRole: %w", err)
	}

	return nil
}
