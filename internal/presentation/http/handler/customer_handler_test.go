package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/pagination"
)

// stubCustomerRepo records the listing parameters it was called with.
type stubCustomerRepo struct {
	repository.CustomerRepository
	customers  []entity.Customer
	pageParams *pagination.PaginationParams
	cursor     *pagination.CursorParams
	search     string
}

func (r *stubCustomerRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	r.pageParams, r.search = params, search
	return r.customers, int64(len(r.customers)), nil
}

func (r *stubCustomerRepo) ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, search string) ([]entity.Customer, error) {
	r.cursor, r.search = params, search
	return r.customers, nil
}

func newCustomerRouter(repo *stubCustomerRepo, userID uuid.UUID) *gin.Engine {
	h := NewCustomerHandler(service.NewCustomerService(repo))
	r := gin.New()
	r.GET("/customers", withUser(userID, "cashier"), h.List)
	return r
}

func TestCustomerHandler_List(t *testing.T) {
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	customers := []entity.Customer{
		{ID: uuid.New(), Name: "Asha Traders", CreatedAt: created},
		{ID: uuid.New(), Name: "Bharat Stores", CreatedAt: created.Add(-time.Hour)},
		{ID: uuid.New(), Name: "Chandra & Sons", CreatedAt: created.Add(-2 * time.Hour)},
	}

	t.Run("page listing", func(t *testing.T) {
		repo := &stubCustomerRepo{customers: customers}
		w := doJSON(t, newCustomerRouter(repo, uuid.New()), http.MethodGet, "/customers?page=2&per_page=500&search=asha", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var page pagination.PaginatedResult[entity.Customer]
		decode(t, w, &page)
		assert.Len(t, page.Items, 3)
		assert.Equal(t, 2, page.Pagination.CurrentPage)

		require.NotNil(t, repo.pageParams)
		assert.Nil(t, repo.cursor)
		assert.Equal(t, 2, repo.pageParams.Page)
		assert.Equal(t, 100, repo.pageParams.PerPage)
		assert.Equal(t, "asha", repo.search)
	})

	t.Run("limit switches to cursor listing", func(t *testing.T) {
		repo := &stubCustomerRepo{customers: customers}
		w := doJSON(t, newCustomerRouter(repo, uuid.New()), http.MethodGet, "/customers?limit=2", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var page pagination.CursorPaginatedResult[entity.Customer]
		decode(t, w, &page)
		assert.Len(t, page.Items, 2)
		assert.True(t, page.Pagination.HasNext)
		require.NotNil(t, page.Pagination.NextCursor)

		require.NotNil(t, repo.cursor)
		assert.Nil(t, repo.pageParams)
		assert.Equal(t, 2, repo.cursor.Limit)
		assert.Equal(t, pagination.CursorDirectionNext, repo.cursor.Direction)
	})

	t.Run("cursor with default limit", func(t *testing.T) {
		repo := &stubCustomerRepo{customers: customers}
		cursor := pagination.EncodeCursor(customers[0].ID.String(), created)
		w := doJSON(t, newCustomerRouter(repo, uuid.New()), http.MethodGet, "/customers?direction=prev&cursor="+cursor, nil)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, repo.cursor)
		assert.Equal(t, 15, repo.cursor.Limit)
		assert.Equal(t, pagination.CursorDirectionPrev, repo.cursor.Direction)
	})

	t.Run("bad cursor", func(t *testing.T) {
		repo := &stubCustomerRepo{customers: customers}
		w := doJSON(t, newCustomerRouter(repo, uuid.New()), http.MethodGet, "/customers?cursor=%21%21%21", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed page", func(t *testing.T) {
		repo := &stubCustomerRepo{customers: customers}
		w := doJSON(t, newCustomerRouter(repo, uuid.New()), http.MethodGet, "/customers?page=two", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, repo.pageParams)
	})
}
