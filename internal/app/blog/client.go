package blog

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/nestboard/adminsdk/internal/app/api"
)

const resource = "blogs"

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	if apiClient == nil {
		panic("blog.NewClient: nil api client")
	}
	return &Client{api: apiClient}
}

func (c *Client) path(parts ...string) string {
	return c.api.AdminPath(append([]string{resource}, parts...)...)
}

func (c *Client) List(ctx context.Context, page api.Page, tag string) ([]Post, api.Pagination, error) {
	query := url.Values{}
	if tag != "" {
		query.Set("tag", tag)
	}

	items, pagination, err := api.List[Post](ctx, c.api, c.path(), page, query)
	if err != nil {
		return nil, api.Pagination{}, fmt.Errorf("blog.Client.List: %w", err)
	}

	return items, pagination, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Post, error) {
	post, err := api.One[Post](ctx, c.api, c.path(itoa(id)))
	if err != nil {
		return Post{}, fmt.Errorf("blog.Client.Get: %w", err)
	}

	return post, nil
}

func (c *Client) Create(ctx context.Context, req CreateReq) (Post, error) {
	post, err := api.Create[Post](ctx, c.api, c.path(), req)
	if err != nil {
		return Post{}, fmt.Errorf("blog.Client.Create: %w", err)
	}

	return post, nil
}

func (c *Client) Update(ctx context.Context, id int64, req UpdateReq) (Post, error) {
	post, err := api.Update[Post](ctx, c.api, c.path(itoa(id)), req)
	if err != nil {
		return Post{}, fmt.Errorf("blog.Client.Update: %w", err)
	}

	return post, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := api.Remove(ctx, c.api, c.path(itoa(id)), nil); err != nil {
		return fmt.Errorf("blog.Client.Delete: %w", err)
	}

	return nil
}

func (c *Client) Publish(ctx context.Context, id int64) (Post, error) {
	post, err := api.Create[Post](ctx, c.api, c.path(itoa(id), "publish"), nil)
	if err != nil {
		return Post{}, fmt.Errorf("blog.Client.Publish: %w", err)
	}

	return post, nil
}

// UploadCover replaces the post's cover image via multipart form submission.
func (c *Client) UploadCover(ctx context.Context, id int64, name, contentType string, r io.Reader) (Post, error) {
	files := []api.File{{Field: "cover", Name: name, ContentType: contentType, Reader: r}}

	env, err := c.api.PostMultipart(ctx, c.path(itoa(id), "cover"), nil, files, api.CredentialsInclude)
	if err != nil {
		return Post{}, fmt.Errorf("blog.Client.UploadCover: %w", err)
	}

	post, err := api.DecodeData[Post](env)
	if err != nil {
		return Post{}, fmt.Errorf("blog.Client.UploadCover: %w", err)
	}

	return post, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
