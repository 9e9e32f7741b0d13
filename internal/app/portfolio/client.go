package portfolio

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nestboard/adminsdk/internal/app/api"
)

const resource = "portfolios"

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	if apiClient == nil {
		panic("portfolio.NewClient: nil api client")
	}
	return &Client{api: apiClient}
}

func (c *Client) path(parts ...string) string {
	return c.api.AdminPath(append([]string{resource}, parts...)...)
}

func (c *Client) List(ctx context.Context, page api.Page) ([]Portfolio, api.Pagination, error) {
	items, pagination, err := api.List[Portfolio](ctx, c.api, c.path(), page, nil)
	if err != nil {
		return nil, api.Pagination{}, fmt.Errorf("portfolio.Client.List: %w", err)
	}

	return items, pagination, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Portfolio, error) {
	item, err := api.One[Portfolio](ctx, c.api, c.path(itoa(id)))
	if err != nil {
		return Portfolio{}, fmt.Errorf("portfolio.Client.Get: %w", err)
	}

	return item, nil
}

func (c *Client) Create(ctx context.Context, req SaveReq) (Portfolio, error) {
	item, err := api.Create[Portfolio](ctx, c.api, c.path(), req)
	if err != nil {
		return Portfolio{}, fmt.Errorf("portfolio.Client.Create: %w", err)
	}

	return item, nil
}

func (c *Client) Update(ctx context.Context, id int64, req SaveReq) (Portfolio, error) {
	item, err := api.Update[Portfolio](ctx, c.api, c.path(itoa(id)), req)
	if err != nil {
		return Portfolio{}, fmt.Errorf("portfolio.Client.Update: %w", err)
	}

	return item, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := api.Remove(ctx, c.api, c.path(itoa(id)), nil); err != nil {
		return fmt.Errorf("portfolio.Client.Delete: %w", err)
	}

	return nil
}

// Reorder persists a full ordering of portfolio IDs.
func (c *Client) Reorder(ctx context.Context, orderedIDs []int64) error {
	body := map[string][]int64{"ordered_ids": orderedIDs}
	if _, err := c.api.Post(ctx, c.path("reorder"), body, api.CredentialsInclude); err != nil {
		return fmt.Errorf("portfolio.Client.Reorder: %w", err)
	}

	return nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
