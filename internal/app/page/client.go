package page

import (
	"context"
	"fmt"

	"github.com/nestboard/adminsdk/internal/app/api"
)

const resource = "pages"

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	if apiClient == nil {
		panic("page.NewClient: nil api client")
	}
	return &Client{api: apiClient}
}

func (c *Client) List(ctx context.Context, page api.Page) ([]Page, api.Pagination, error) {
	items, pagination, err := api.List[Page](ctx, c.api, c.api.AdminPath(resource), page, nil)
	if err != nil {
		return nil, api.Pagination{}, fmt.Errorf("page.Client.List: %w", err)
	}

	return items, pagination, nil
}

func (c *Client) Get(ctx context.Context, slug string) (Page, error) {
	item, err := api.One[Page](ctx, c.api, c.api.AdminPath(resource, slug))
	if err != nil {
		return Page{}, fmt.Errorf("page.Client.Get: %w", err)
	}

	return item, nil
}

func (c *Client) Save(ctx context.Context, slug string, req SaveReq) (Page, error) {
	item, err := api.Update[Page](ctx, c.api, c.api.AdminPath(resource, slug), req)
	if err != nil {
		return Page{}, fmt.Errorf("page.Client.Save: %w", err)
	}

	return item, nil
}
