package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/apperror"
	"github.com/sangkips/billdesk-api/pkg/logger"
	"github.com/sangkips/billdesk-api/pkg/pagination"
	"github.com/sangkips/billdesk-api/pkg/utils"
)

const defaultUnitLabel = "pc"

// DocumentService handles quotations, estimates, invoices and petty cash
// slips. Every write goes through the billing engine and stores its
// rounded output.
type DocumentService struct {
	documentRepo repository.DocumentRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	defaultMode  enum.TaxMode
	log          zerolog.Logger
	now          func() time.Time
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documentRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	defaultMode enum.TaxMode,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		defaultMode:  defaultMode,
		log:          logger.WithComponent("documents"),
		now:          time.Now,
	}
}

// DocumentLineInput is one line as submitted by a billing screen. When
// ProductID is set, omitted fields are taken from the catalogue.
type DocumentLineInput struct {
	ProductID       *uuid.UUID
	Name            string
	UnitLabel       string
	UnitPrice       billing.NumericInput
	Quantity        billing.NumericInput
	DiscountPercent billing.NumericInput
	TaxRatePercent  billing.NumericInput
}

// DocumentInput holds the editable fields shared by create and update
type DocumentInput struct {
	CustomerID      *uuid.UUID
	CustomerName    string
	Date            *time.Time
	TaxMode         *enum.TaxMode
	ExtraCharge     billing.NumericInput
	ExtraChargeNote *string
	PaymentStatus   enum.PaymentStatus
	PaidAmount      *decimal.Decimal
	Note            *string
	Lines           []DocumentLineInput
}

// CreateDocumentInput represents the input for creating a document
type CreateDocumentInput struct {
	Actor  Actor
	Type   enum.DocumentType
	Status enum.DocumentStatus
	DocumentInput
}

// CreateDocument evaluates and stores a new document
func (s *DocumentService) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*entity.Document, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewFieldError("type", "must be one of Quotation, Estimate, Invoice, PettyCash")
	}
	if input.Status == enum.DocumentStatusCanceled {
		return nil, apperror.NewFieldError("status", "a new document must be Draft or Issued")
	}

	doc := &entity.Document{
		UserID: input.Actor.UserID,
		Type:   input.Type,
		Status: input.Status,
		Date:   s.now(),
	}
	if err := s.apply(ctx, doc, &input.DocumentInput); err != nil {
		return nil, err
	}

	next, err := s.documentRepo.GetNextReferenceNumber(ctx, doc.Type)
	if err != nil {
		return nil, err
	}
	doc.Reference = utils.FormatReference(doc.Type.ReferencePrefix(), next)

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("reference", doc.Reference).
		Str("type", doc.Type.String()).
		Str("total", doc.Total.StringFixed(billing.MoneyPlaces)).
		Msg("document created")

	return s.documentRepo.GetWithLines(ctx, doc.ID)
}

// GetDocument retrieves a document with its lines and payments
func (s *DocumentService) GetDocument(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.documentRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	if !actor.CanAccess(doc.UserID) {
		return nil, apperror.ErrForbidden
	}
	return doc, nil
}

// ListDocumentsInput represents the input for listing documents
type ListDocumentsInput struct {
	Actor  Actor
	Filter repository.DocumentFilterParams
}

// ListDocuments lists documents with pagination
func (s *DocumentService) ListDocuments(ctx context.Context, input *ListDocumentsInput) (*pagination.PaginatedResult[entity.Document], error) {
	params := input.Filter
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	docs, total, err := s.documentRepo.List(ctx, input.Actor.scope(), &params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(docs, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// UpdateDocumentInput represents the input for replacing a draft's contents
type UpdateDocumentInput struct {
	Actor Actor
	ID    uuid.UUID
	DocumentInput
}

// UpdateDocument re-evaluates a draft with new contents
func (s *DocumentService) UpdateDocument(ctx context.Context, input *UpdateDocumentInput) (*entity.Document, error) {
	doc, err := s.editable(ctx, input.Actor, input.ID)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, doc, &input.DocumentInput); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return s.documentRepo.GetWithLines(ctx, doc.ID)
}

// SwitchDocumentMode toggles a draft between inclusive and exclusive
// pricing. Stored base prices are kept; display prices and totals are
// re-derived from them.
func (s *DocumentService) SwitchDocumentMode(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	cart := billing.NewDocument(doc.TaxMode, doc.ExtraCharge, storedLines(doc.Lines)...)
	cart.SwitchMode()

	payment := billing.PaymentInput{Status: doc.PaymentStatus}
	if doc.PaymentStatus == enum.PaymentStatusPartial {
		paid := doc.PaidAmount
		payment.PaidAmount = &paid
	}
	summary, err := billing.Evaluate(cart, payment)
	if err != nil {
		return nil, billingError(err, "")
	}
	applySummary(doc, summary)

	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return s.documentRepo.GetWithLines(ctx, doc.ID)
}

// UpdateStatus moves a document through Draft -> Issued -> Canceled
func (s *DocumentService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status enum.DocumentStatus) (*entity.Document, error) {
	doc, err := s.GetDocument(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !doc.Status.CanTransitionTo(status) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Cannot move document from %s to %s", doc.Status, status))
	}
	if status == enum.DocumentStatusIssued && len(doc.Lines) == 0 {
		return nil, apperror.NewFieldError("lines", "an issued document needs at least one line")
	}

	if err := s.documentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.log.Info().Str("reference", doc.Reference).Str("status", status.String()).Msg("document status changed")

	doc.Status = status
	return doc, nil
}

// RecordPaymentInput represents a payment received against a document
type RecordPaymentInput struct {
	Actor      Actor
	DocumentID uuid.UUID
	Amount     decimal.Decimal
	Method     string
	Note       *string
	PaidAt     *time.Time
}

// RecordPayment appends a payment to an issued document and re-settles it.
// The document becomes Paid once the cumulative amount reaches the total.
func (s *DocumentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Document, error) {
	doc, err := s.GetDocument(ctx, input.Actor, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if !doc.Type.AcceptsPayments() {
		return nil, apperror.NewBadRequestError(doc.Type.String() + " documents do not accept payments")
	}
	if doc.Status != enum.DocumentStatusIssued {
		return nil, apperror.NewBadRequestError("Payments can only be recorded against issued documents")
	}
	if doc.PaymentStatus == enum.PaymentStatusPaid || !doc.DueAmount.IsPositive() {
		return nil, apperror.NewConflictError("Document is already fully paid")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewFieldError("amount", "must be greater than 0")
	}

	amount := billing.Round(input.Amount)
	cumulative := doc.PaidAmount.Add(amount)

	status := enum.PaymentStatusPartial
	if cumulative.GreaterThanOrEqual(doc.Total) {
		status = enum.PaymentStatusPaid
	}
	settlement, err := billing.Settle(doc.Total, status, &cumulative)
	if err != nil {
		return nil, billingError(err, "")
	}
	doc.PaymentStatus = settlement.Status
	doc.PaidAmount = billing.Round(settlement.PaidAmount)
	doc.DueAmount = billing.Round(settlement.DueAmount)

	method := strings.TrimSpace(input.Method)
	if method == "" {
		method = "cash"
	}
	paidAt := s.now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}
	payment := &entity.Payment{
		DocumentID: doc.ID,
		UserID:     input.Actor.UserID,
		Amount:     amount,
		Method:     method,
		Note:       input.Note,
		PaidAt:     paidAt,
	}

	if err := s.documentRepo.AddPayment(ctx, payment, doc); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("reference", doc.Reference).
		Str("amount", amount.StringFixed(billing.MoneyPlaces)).
		Str("payment_status", doc.PaymentStatus.String()).
		Msg("payment recorded")

	return s.documentRepo.GetWithLines(ctx, doc.ID)
}

// DeleteDocument deletes a draft
func (s *DocumentService) DeleteDocument(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}
	return s.documentRepo.Delete(ctx, id)
}

func (s *DocumentService) editable(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.GetDocument(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !doc.IsEditable() {
		return nil, apperror.NewBadRequestError("Only draft documents can be changed")
	}
	return doc, nil
}

// apply resolves the customer and catalogue lines, evaluates the cart and
// writes the result onto doc
func (s *DocumentService) apply(ctx context.Context, doc *entity.Document, input *DocumentInput) error {
	if err := s.resolveCustomer(ctx, doc, input); err != nil {
		return err
	}
	if doc.Status == enum.DocumentStatusIssued && len(input.Lines) == 0 {
		return apperror.NewFieldError("lines", "an issued document needs at least one line")
	}
	if !doc.Type.AcceptsPayments() && input.PaymentStatus != enum.PaymentStatusUnpaid {
		return apperror.NewFieldError("payment_status", doc.Type.String()+" documents cannot carry payments")
	}

	mode := s.defaultMode
	if input.TaxMode != nil {
		mode = *input.TaxMode
	}

	lines, err := s.resolveLines(ctx, input.Lines, mode)
	if err != nil {
		return err
	}

	cart := billing.NewDocument(mode, billing.NormalizeExtraCharge(input.ExtraCharge), lines...)
	summary, err := billing.Evaluate(cart, billing.PaymentInput{Status: input.PaymentStatus, PaidAmount: input.PaidAmount})
	if err != nil {
		return billingError(err, "")
	}

	if input.Date != nil {
		doc.Date = *input.Date
	}
	doc.ExtraChargeNote = input.ExtraChargeNote
	doc.Note = input.Note
	applySummary(doc, summary)
	return nil
}

func (s *DocumentService) resolveCustomer(ctx context.Context, doc *entity.Document, input *DocumentInput) error {
	name := strings.TrimSpace(input.CustomerName)
	doc.CustomerID = nil

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil || customer.UserID != doc.UserID {
			return apperror.NewNotFoundError("Customer")
		}
		doc.CustomerID = &customer.ID
		if name == "" {
			name = customer.Name
		}
	}

	if name == "" {
		return apperror.NewFieldError("customer_name", "is required")
	}
	doc.CustomerName = name
	return nil
}

// resolveLines fills catalogue defaults and normalises every line. A line
// priced from the catalogue keeps the product's base price exactly.
func (s *DocumentService) resolveLines(ctx context.Context, inputs []DocumentLineInput, mode enum.TaxMode) ([]billing.LineItem, error) {
	products, err := s.loadProducts(ctx, inputs)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.LineItem, 0, len(inputs))
	for i, in := range inputs {
		raw := billing.RawLine{
			ProductRef:      in.ProductID,
			Name:            strings.TrimSpace(in.Name),
			UnitLabel:       strings.TrimSpace(in.UnitLabel),
			UnitPrice:       in.UnitPrice,
			Quantity:        in.Quantity,
			DiscountPercent: in.DiscountPercent,
			TaxRatePercent:  in.TaxRatePercent,
		}

		var product *entity.Product
		if in.ProductID != nil {
			p, ok := products[*in.ProductID]
			if !ok {
				return nil, apperror.NewNotFoundError("Product")
			}
			product = &p
			if raw.Name == "" {
				raw.Name = p.Name
			}
			if raw.UnitLabel == "" {
				raw.UnitLabel = p.UnitLabel
			}
			if raw.TaxRatePercent.IsEmpty() {
				raw.TaxRatePercent = billing.Num(p.GSTRate)
			}
		}

		if raw.Name == "" {
			return nil, apperror.NewFieldError(fmt.Sprintf("lines[%d].name", i), "is required")
		}
		if raw.UnitLabel == "" {
			raw.UnitLabel = defaultUnitLabel
		}

		line, err := billing.Normalize(raw, mode)
		if err != nil {
			return nil, billingError(err, fmt.Sprintf("lines[%d].tax_rate_percent", i))
		}
		if product != nil && in.UnitPrice.IsEmpty() {
			line.BasePrice = product.BasePrice
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *DocumentService) loadProducts(ctx context.Context, inputs []DocumentLineInput) (map[uuid.UUID]entity.Product, error) {
	var ids []uuid.UUID
	for _, in := range inputs {
		if in.ProductID != nil {
			ids = append(ids, *in.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// applySummary copies the rounded engine output onto the stored document
func applySummary(doc *entity.Document, summary billing.Summary) {
	doc.TaxMode = summary.TaxMode
	doc.ExtraCharge = summary.ExtraCharge
	doc.SubTotal = summary.SubTotal
	doc.Tax = summary.Tax
	doc.Total = summary.Total
	doc.PaymentStatus = summary.PaymentStatus
	doc.PaidAmount = summary.PaidAmount
	doc.DueAmount = summary.DueAmount

	doc.Lines = make([]entity.DocumentLine, 0, len(summary.Lines))
	for i, l := range summary.Lines {
		doc.Lines = append(doc.Lines, entity.DocumentLine{
			DocumentID:      doc.ID,
			ProductID:       l.ProductRef,
			Position:        i,
			Name:            l.Name,
			UnitLabel:       l.UnitLabel,
			Quantity:        l.Quantity,
			BasePrice:       l.BasePrice,
			DiscountPercent: l.DiscountPercent,
			TaxRatePercent:  l.TaxRatePercent,
			DisplayPrice:    l.DisplayPrice,
			DiscountedBase:  l.DiscountedBase,
			TaxAmount:       l.TaxAmount,
			LineTotal:       l.LineTotal,
		})
	}
}

// storedLines rebuilds engine lines from their persisted base prices
func storedLines(stored []entity.DocumentLine) []billing.LineItem {
	lines := make([]billing.LineItem, 0, len(stored))
	for _, l := range stored {
		lines = append(lines, billing.LineItem{
			ProductRef:      l.ProductID,
			Name:            l.Name,
			UnitLabel:       l.UnitLabel,
			Quantity:        l.Quantity,
			BasePrice:       l.BasePrice,
			DiscountPercent: l.DiscountPercent,
			TaxRatePercent:  l.TaxRatePercent,
		})
	}
	return lines
}
