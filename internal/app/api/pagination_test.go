package api_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestboard/adminsdk/internal/app/api"
)

func TestPage_Apply(t *testing.T) {
	t.Parallel()

	t.Run("translates to limit offset", func(t *testing.T) {
		t.Parallel()

		query := url.Values{"page": {"3"}, "size": {"20"}, "city": {"Lisbon"}}
		got := api.Page{Page: 2, Size: 10}.Apply(query)

		require.Equal(t, "10", got.Get("limit"))
		require.Equal(t, "10", got.Get("offset"))
		require.Equal(t, "Lisbon", got.Get("city"))
		require.Empty(t, got.Get("page"))
		require.Empty(t, got.Get("size"))
	})

	t.Run("no window leaves query unpaged", func(t *testing.T) {
		t.Parallel()

		got := api.Page{}.Apply(nil)
		require.Empty(t, got.Get("limit"))
		require.Empty(t, got.Get("offset"))
	})
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested api.Page
		got       *api.Pagination
		want      api.Pagination
	}{
		{
			name:      "server block passes through untouched",
			requested: api.Page{Page: 2, Size: 10},
			got:       &api.Pagination{Count: 25, PageSize: 10, CurrentPage: 2, TotalPages: 3},
			want:      api.Pagination{Count: 25, PageSize: 10, CurrentPage: 2, TotalPages: 3},
		},
		{
			name:      "missing page size defaults to requested",
			requested: api.Page{Page: 1, Size: 25},
			got:       &api.Pagination{Count: 100},
			want:      api.Pagination{Count: 100, PageSize: 25, CurrentPage: 1, TotalPages: 4},
		},
		{
			name:      "missing everything defaults to ten",
			requested: api.Page{},
			got:       &api.Pagination{Count: 25},
			want:      api.Pagination{Count: 25, PageSize: 10, CurrentPage: 1, TotalPages: 3},
		},
		{
			name:      "out of range page clamps to total",
			requested: api.Page{Page: 99, Size: 10},
			got:       &api.Pagination{Count: 25, PageSize: 10, CurrentPage: 99, TotalPages: 3},
			want:      api.Pagination{Count: 25, PageSize: 10, CurrentPage: 3, TotalPages: 3},
		},
		{
			name:      "below range clamps to one",
			requested: api.Page{Page: -4, Size: 10},
			got:       &api.Pagination{Count: 25, PageSize: 10, CurrentPage: -4, TotalPages: 3},
			want:      api.Pagination{Count: 25, PageSize: 10, CurrentPage: 1, TotalPages: 3},
		},
		{
			name:      "absent block entirely",
			requested: api.Page{Page: 2, Size: 10},
			got:       nil,
			want:      api.Pagination{PageSize: 10, CurrentPage: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := api.Reconcile(tt.requested, tt.got)
			require.Equal(t, tt.want, got)

			// Clamping is idempotent: reconciling the result again is a no-op.
			again := api.Reconcile(tt.requested, &got)
			require.Equal(t, got, again)
		})
	}
}
