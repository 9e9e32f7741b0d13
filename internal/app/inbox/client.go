package inbox

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nestboard/adminsdk/internal/app/api"
)

const resource = "inbox"

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	if apiClient == nil {
		panic("inbox.NewClient: nil api client")
	}
	return &Client{api: apiClient}
}

func (c *Client) path(parts ...string) string {
	return c.api.AdminPath(append([]string{resource}, parts...)...)
}

func (c *Client) List(ctx context.Context, page api.Page, unreadOnly bool) ([]Message, api.Pagination, error) {
	query := url.Values{}
	if unreadOnly {
		query.Set("is_read", "false")
	}

	items, pagination, err := api.List[Message](ctx, c.api, c.path(), page, query)
	if err != nil {
		return nil, api.Pagination{}, fmt.Errorf("inbox.Client.List: %w", err)
	}

	return items, pagination, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Message, error) {
	msg, err := api.One[Message](ctx, c.api, c.path(strconv.FormatInt(id, 10)))
	if err != nil {
		return Message{}, fmt.Errorf("inbox.Client.Get: %w", err)
	}

	return msg, nil
}

func (c *Client) MarkRead(ctx context.Context, id int64) (Message, error) {
	msg, err := api.Create[Message](ctx, c.api, c.path(strconv.FormatInt(id, 10), "mark-read"), nil)
	if err != nil {
		return Message{}, fmt.Errorf("inbox.Client.MarkRead: %w", err)
	}

	return msg, nil
}

func (c *Client) BulkDelete(ctx context.Context, ids []int64) error {
	body := map[string][]int64{"ids": ids}
	if _, err := c.api.Post(ctx, c.path("bulk-delete"), body, api.CredentialsInclude); err != nil {
		return fmt.Errorf("inbox.Client.BulkDelete: %w", err)
	}

	return nil
}
