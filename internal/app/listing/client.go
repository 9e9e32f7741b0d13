package listing

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/nestboard/adminsdk/internal/app/api"
)

const resource = "listings"

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	if apiClient == nil {
		panic("listing.NewClient: nil api client")
	}
	return &Client{api: apiClient}
}

func (c *Client) path(parts ...string) string {
	return c.api.AdminPath(append([]string{resource}, parts...)...)
}

func (c *Client) List(ctx context.Context, page api.Page, filter Filter) ([]Listing, api.Pagination, error) {
	items, pagination, err := api.List[Listing](ctx, c.api, c.path(), page, filter.values())
	if err != nil {
		return nil, api.Pagination{}, fmt.Errorf("listing.Client.List: %w", err)
	}

	return items, pagination, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Listing, error) {
	item, err := api.One[Listing](ctx, c.api, c.path(itoa(id)))
	if err != nil {
		return Listing{}, fmt.Errorf("listing.Client.Get: %w", err)
	}

	return item, nil
}

func (c *Client) Create(ctx context.Context, req CreateReq) (Listing, error) {
	item, err := api.Create[Listing](ctx, c.api, c.path(), req)
	if err != nil {
		return Listing{}, fmt.Errorf("listing.Client.Create: %w", err)
	}

	return item, nil
}

func (c *Client) Update(ctx context.Context, id int64, req UpdateReq) (Listing, error) {
	item, err := api.Update[Listing](ctx, c.api, c.path(itoa(id)), req)
	if err != nil {
		return Listing{}, fmt.Errorf("listing.Client.Update: %w", err)
	}

	return item, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := api.Remove(ctx, c.api, c.path(itoa(id)), nil); err != nil {
		return fmt.Errorf("listing.Client.Delete: %w", err)
	}

	return nil
}

func (c *Client) Publish(ctx context.Context, id int64) (Listing, error) {
	item, err := api.Create[Listing](ctx, c.api, c.path(itoa(id), "publish"), nil)
	if err != nil {
		return Listing{}, fmt.Errorf("listing.Client.Publish: %w", err)
	}

	return item, nil
}

func (c *Client) BulkDelete(ctx context.Context, ids []int64) error {
	body := map[string][]int64{"ids": ids}
	if _, err := c.api.Post(ctx, c.path("bulk-delete"), body, api.CredentialsInclude); err != nil {
		return fmt.Errorf("listing.Client.BulkDelete: %w", err)
	}

	return nil
}

// Export downloads the filtered listing set as a file; the backend picks the
// format and reports it via content type.
func (c *Client) Export(ctx context.Context, filter Filter) ([]byte, string, error) {
	raw, contentType, err := c.api.Download(ctx, c.path("export"), filter.values())
	if err != nil {
		return nil, "", fmt.Errorf("listing.Client.Export: %w", err)
	}

	return raw, contentType, nil
}

// Upload is one image file plus its scalar metadata.
type Upload struct {
	Name        string
	ContentType string
	Alt         string
	Position    int
	Reader      io.Reader
}

// UploadImages attaches images to a listing. Files travel as multipart file
// parts; per-image metadata is JSON-stringified into a form field.
func (c *Client) UploadImages(ctx context.Context, id int64, uploads []Upload) ([]Image, error) {
	files := lo.Map(uploads, func(u Upload, i int) api.File {
		return api.File{
			Field:       "images[" + strconv.Itoa(i) + "]",
			Name:        u.Name,
			ContentType: u.ContentType,
			Reader:      u.Reader,
		}
	})
	meta := lo.Map(uploads, func(u Upload, _ int) map[string]any {
		return map[string]any{"alt": u.Alt, "position": u.Position}
	})

	env, err := c.api.PostMultipart(ctx, c.path(itoa(id), "images"), map[string]any{"meta": meta}, files, api.CredentialsInclude)
	if err != nil {
		return nil, fmt.Errorf("listing.Client.UploadImages: %w", err)
	}

	images, err := api.DecodeData[[]Image](env)
	if err != nil {
		return nil, fmt.Errorf("listing.Client.UploadImages: %w", err)
	}

	return images, nil
}

func (f Filter) values() url.Values {
	query := url.Values{}
	if f.City != "" {
		query.Set("city", f.City)
	}
	if f.Status != "" {
		query.Set("status", string(f.Status))
	}
	if f.MinPrice > 0 {
		query.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		query.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	return query
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
