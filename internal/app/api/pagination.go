package api

import (
	"net/url"
	"strconv"
)

const defaultPageSize = 10

// Page is a caller's requested window into a list.
type Page struct {
	Page int
	Size int
}

// Apply translates the window to the backend's limit/offset convention on
// the outbound query. The page/size keys never go over the wire.
func (p Page) Apply(query url.Values) url.Values {
	if query == nil {
		query = url.Values{}
	}
	query.Del("page")
	query.Del("size")

	if p.Page > 0 && p.Size > 0 {
		query.Set("limit", strconv.Itoa(p.Size))
		query.Set("offset", strconv.Itoa((p.Page-1)*p.Size))
	}

	return query
}

// Reconcile fills in and clamps a server-reported pagination block, which may
// be partially absent. Reconciling an already-reconciled block is a no-op.
func Reconcile(requested Page, got *Pagination) Pagination {
	var out Pagination
	if got != nil {
		out = *got
	}

	if out.PageSize <= 0 {
		out.PageSize = requested.Size
	}
	if out.PageSize <= 0 {
		out.PageSize = defaultPageSize
	}

	if out.TotalPages <= 0 && out.Count > 0 {
		out.TotalPages = (out.Count + out.PageSize - 1) / out.PageSize
	}

	if out.CurrentPage <= 0 {
		out.CurrentPage = requested.Page
	}
	if out.CurrentPage < 1 {
		out.CurrentPage = 1
	}
	if out.TotalPages > 0 && out.CurrentPage > out.TotalPages {
		out.CurrentPage = out.TotalPages
	}

	return out
}
