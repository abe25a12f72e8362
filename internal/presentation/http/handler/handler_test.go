package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser stands in for AuthMiddleware
func withUser(userID uuid.UUID, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_roles", roles)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// stubDocumentRepo implements the read paths used by handler tests. Other
// methods panic through the nil embedded interface.
type stubDocumentRepo struct {
	repository.DocumentRepository
	docs map[uuid.UUID]*entity.Document
}

func (r *stubDocumentRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return r.docs[id], nil
}

func (r *stubDocumentRepo) ListForExport(ctx context.Context, userID uuid.UUID, params *repository.DocumentFilterParams) ([]entity.Document, error) {
	var out []entity.Document
	for _, d := range r.docs {
		if userID == uuid.Nil || d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func storedInvoice(owner uuid.UUID) *entity.Document {
	total := decimal.RequireFromString("212.40")
	return &entity.Document{
		ID:            uuid.New(),
		UserID:        owner,
		Type:          enum.DocumentTypeInvoice,
		Status:        enum.DocumentStatusIssued,
		Reference:     "INV-000001",
		CustomerName:  "Walk-in",
		TaxMode:       enum.TaxModeExclusive,
		PaymentStatus: enum.PaymentStatusUnpaid,
		SubTotal:      decimal.RequireFromString("180"),
		Tax:           decimal.RequireFromString("32.40"),
		Total:         total,
		DueAmount:     total,
	}
}
