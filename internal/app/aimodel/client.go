package aimodel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nestboard/adminsdk/internal/app/api"
)

const resource = "ai-models"

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	if apiClient == nil {
		panic("aimodel.NewClient: nil api client")
	}
	return &Client{api: apiClient}
}

func (c *Client) path(parts ...string) string {
	return c.api.AdminPath(append([]string{resource}, parts...)...)
}

func (c *Client) List(ctx context.Context, page api.Page) ([]Model, api.Pagination, error) {
	items, pagination, err := api.List[Model](ctx, c.api, c.path(), page, nil)
	if err != nil {
		return nil, api.Pagination{}, fmt.Errorf("aimodel.Client.List: %w", err)
	}

	return items, pagination, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Model, error) {
	model, err := api.One[Model](ctx, c.api, c.path(itoa(id)))
	if err != nil {
		return Model{}, fmt.Errorf("aimodel.Client.Get: %w", err)
	}

	return model, nil
}

func (c *Client) Create(ctx context.Context, req SaveReq) (Model, error) {
	model, err := api.Create[Model](ctx, c.api, c.path(), req)
	if err != nil {
		return Model{}, fmt.Errorf("aimodel.Client.Create: %w", err)
	}

	return model, nil
}

func (c *Client) Update(ctx context.Context, id int64, req SaveReq) (Model, error) {
	model, err := api.Update[Model](ctx, c.api, c.path(itoa(id)), req)
	if err != nil {
		return Model{}, fmt.Errorf("aimodel.Client.Update: %w", err)
	}

	return model, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := api.Remove(ctx, c.api, c.path(itoa(id)), nil); err != nil {
		return fmt.Errorf("aimodel.Client.Delete: %w", err)
	}

	return nil
}

// Activate makes this model the active one; the backend deactivates the rest.
func (c *Client) Activate(ctx context.Context, id int64) (Model, error) {
	model, err := api.Create[Model](ctx, c.api, c.path(itoa(id), "activate"), nil)
	if err != nil {
		return Model{}, fmt.Errorf("aimodel.Client.Activate: %w", err)
	}

	return model, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
