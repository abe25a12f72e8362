package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/pagination"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// fakeDocumentRepo is an in-memory DocumentRepository
type fakeDocumentRepo struct {
	mu       sync.Mutex
	order    []uuid.UUID
	docs     map[uuid.UUID]entity.Document
	payments []entity.Payment
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]entity.Document)}
}

func cloneDocument(d entity.Document) entity.Document {
	d.Lines = append([]entity.DocumentLine(nil), d.Lines...)
	d.Payments = append([]entity.Payment(nil), d.Payments...)
	return d
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	for i := range d.Lines {
		d.Lines[i].ID = uuid.New()
		d.Lines[i].DocumentID = d.ID
	}
	d.CreatedAt = time.Now()
	r.order = append(r.order, d.ID)
	r.docs[d.ID] = cloneDocument(*d)
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return r.GetWithLines(ctx, id)
}

func (r *fakeDocumentRepo) GetByReference(ctx context.Context, reference string) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.Reference == reference {
			out := cloneDocument(d)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	out := cloneDocument(d)
	return &out, nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.docs[d.ID]
	for i := range d.Lines {
		d.Lines[i].ID = uuid.New()
		d.Lines[i].DocumentID = d.ID
	}
	d.Payments = stored.Payments
	r.docs[d.ID] = cloneDocument(*d)
	return nil
}

func (r *fakeDocumentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.docs[id]
	d.Status = status
	r.docs[id] = d
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) matching(userID uuid.UUID, params *repository.DocumentFilterParams) []entity.Document {
	var out []entity.Document
	for _, id := range r.order {
		d, ok := r.docs[id]
		if !ok {
			continue
		}
		if userID != uuid.Nil && d.UserID != userID {
			continue
		}
		if params != nil && params.Type != nil && d.Type != *params.Type {
			continue
		}
		if params != nil && params.Search != "" && !strings.Contains(d.Reference, params.Search) {
			continue
		}
		out = append(out, cloneDocument(d))
	}
	return out
}

func (r *fakeDocumentRepo) List(ctx context.Context, userID uuid.UUID, params *repository.DocumentFilterParams) ([]entity.Document, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(userID, params)
	total := int64(len(all))

	p := params.Pagination
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeDocumentRepo) ListForExport(ctx context.Context, userID uuid.UUID, params *repository.DocumentFilterParams) ([]entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matching(userID, params), nil
}

func (r *fakeDocumentRepo) GetNextReferenceNumber(ctx context.Context, docType enum.DocumentType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.docs {
		if d.Type == docType {
			n++
		}
	}
	return n + 1, nil
}

func (r *fakeDocumentRepo) AddPayment(ctx context.Context, p *entity.Payment, d *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New()
	r.payments = append(r.payments, *p)

	stored := r.docs[d.ID]
	stored.PaymentStatus = d.PaymentStatus
	stored.PaidAmount = d.PaidAmount
	stored.DueAmount = d.DueAmount
	stored.Payments = append(stored.Payments, *p)
	r.docs[d.ID] = stored
	return nil
}

// fakeProductRepo is an in-memory ProductRepository
type fakeProductRepo struct {
	products map[uuid.UUID]entity.Product
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, userID uuid.UUID, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		if userID == uuid.Nil || p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

// fakeCustomerRepo is an in-memory CustomerRepository
type fakeCustomerRepo struct {
	customers map[uuid.UUID]entity.Customer
}

func newFakeCustomerRepo(customers ...entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetByGSTIN(ctx context.Context, gstin string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.GSTIN != nil && *c.GSTIN == gstin {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		if userID == uuid.Nil || c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, search string) ([]entity.Customer, error) {
	out, _, err := r.List(ctx, userID, nil, search)
	return out, err
}

// fakeAnalyticsRepo returns canned aggregates and records the scope it was asked for
type fakeAnalyticsRepo struct {
	buckets   []repository.SalesBucket
	taxByRate []repository.TaxRateBucket
	top       []repository.TopCustomerResult
	userID    uuid.UUID
	from, to  time.Time
}

func (r *fakeAnalyticsRepo) GetSalesBuckets(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]repository.SalesBucket, error) {
	r.userID, r.from, r.to = userID, from, to
	return r.buckets, nil
}

func (r *fakeAnalyticsRepo) GetTaxByRate(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]repository.TaxRateBucket, error) {
	return r.taxByRate, nil
}

func (r *fakeAnalyticsRepo) GetTopCustomers(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]repository.TopCustomerResult, error) {
	return r.top, nil
}

// fakeIdempotencyRepo is an in-memory IdempotencyRepository
type fakeIdempotencyRepo struct {
	keys []entity.IdempotencyKey
}

func (r *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	for _, k := range r.keys {
		if k.Key == key && k.UserID == userID {
			return &k, nil
		}
	}
	return nil, nil
}

func (r *fakeIdempotencyRepo) Create(ctx context.Context, k *entity.IdempotencyKey) error {
	r.keys = append(r.keys, *k)
	return nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	kept := r.keys[:0]
	var n int64
	for _, k := range r.keys {
		if k.IsExpired(now) {
			n++
			continue
		}
		kept = append(kept, k)
	}
	r.keys = kept
	return n, nil
}
