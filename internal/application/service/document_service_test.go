package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/pkg/apperror"
)

type documentFixture struct {
	svc      *DocumentService
	docs     *fakeDocumentRepo
	actor    Actor
	rice     entity.Product
	customer entity.Customer
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	actor := Actor{UserID: uuid.New()}
	rice := entity.Product{
		ID:        uuid.New(),
		UserID:    actor.UserID,
		Name:      "Rice 5kg",
		Code:      "RICE5",
		UnitLabel: "bag",
		BasePrice: dec("100"),
		GSTRate:   dec("18"),
	}
	gstin := "29ABCDE1234F1Z5"
	customer := entity.Customer{ID: uuid.New(), UserID: actor.UserID, Name: "Asha Traders", GSTIN: &gstin}

	docs := newFakeDocumentRepo()
	svc := NewDocumentService(docs, newFakeProductRepo(rice), newFakeCustomerRepo(customer), enum.TaxModeExclusive)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	return &documentFixture{svc: svc, docs: docs, actor: actor, rice: rice, customer: customer}
}

func (f *documentFixture) scenarioC(docType enum.DocumentType, status enum.DocumentStatus) *CreateDocumentInput {
	return &CreateDocumentInput{
		Actor:  f.actor,
		Type:   docType,
		Status: status,
		DocumentInput: DocumentInput{
			CustomerName: "Walk-in",
			ExtraCharge:  billing.NumString("20"),
			Lines: []DocumentLineInput{
				{ProductID: &f.rice.ID, Quantity: billing.NumString("2"), DiscountPercent: billing.NumString("10")},
				{Name: "Soap", UnitPrice: billing.NumString("50"), Quantity: billing.NumString("1"), TaxRatePercent: billing.NumString("5")},
			},
		},
	}
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected AppError, got %v", err)
	return apperror.GetAppError(err).Code
}

func TestCreateDocument_StoresEngineOutput(t *testing.T) {
	f := newDocumentFixture(t)

	doc, err := f.svc.CreateDocument(context.Background(), f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusIssued))
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", doc.Reference)
	assert.Equal(t, "Walk-in", doc.CustomerName)
	assert.Equal(t, "230.00", doc.SubTotal.StringFixed(2))
	assert.Equal(t, "34.90", doc.Tax.StringFixed(2))
	assert.Equal(t, "284.90", doc.Total.StringFixed(2))
	assert.Equal(t, enum.PaymentStatusUnpaid, doc.PaymentStatus)
	assert.Equal(t, "284.90", doc.DueAmount.StringFixed(2))

	require.Len(t, doc.Lines, 2)
	rice := doc.Lines[0]
	assert.Equal(t, "Rice 5kg", rice.Name)
	assert.Equal(t, "bag", rice.UnitLabel)
	assert.Equal(t, "18.00", rice.TaxRatePercent.StringFixed(2))
	assert.Equal(t, "212.40", rice.LineTotal.StringFixed(2))
	assert.Equal(t, &f.rice.ID, rice.ProductID)
	assert.Equal(t, "pc", doc.Lines[1].UnitLabel)
	assert.Equal(t, 1, doc.Lines[1].Position)
}

func TestCreateDocument_ReferencesArePerType(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()

	for _, want := range []string{"QT-000001", "QT-000002"} {
		doc, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypeQuotation, enum.DocumentStatusDraft))
		require.NoError(t, err)
		assert.Equal(t, want, doc.Reference)
	}
	doc, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypePettyCash, enum.DocumentStatusDraft))
	require.NoError(t, err)
	assert.Equal(t, "PC-000001", doc.Reference)
}

func TestCreateDocument_InclusivePriceFromCatalogueKeepsBase(t *testing.T) {
	f := newDocumentFixture(t)
	mode := enum.TaxModeInclusive
	input := f.scenarioC(enum.DocumentTypeEstimate, enum.DocumentStatusDraft)
	input.TaxMode = &mode
	input.ExtraCharge = billing.NumericInput{}
	input.Lines = input.Lines[:1]

	doc, err := f.svc.CreateDocument(context.Background(), input)
	require.NoError(t, err)

	line := doc.Lines[0]
	assert.True(t, line.BasePrice.Equal(dec("100")))
	assert.Equal(t, "118.00", line.DisplayPrice.StringFixed(2))
	assert.Equal(t, "180.00", doc.Total.StringFixed(2))
	assert.Equal(t, "32.40", doc.Tax.StringFixed(2))
}

func TestCreateDocument_CustomerFromDirectory(t *testing.T) {
	f := newDocumentFixture(t)
	input := f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft)
	input.CustomerName = ""
	input.CustomerID = &f.customer.ID

	doc, err := f.svc.CreateDocument(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Asha Traders", doc.CustomerName)
	assert.Equal(t, &f.customer.ID, doc.CustomerID)
}

func TestCreateDocument_Rejections(t *testing.T) {
	missing := uuid.New()

	tests := []struct {
		name   string
		mutate func(f *documentFixture, in *CreateDocumentInput)
		code   int
	}{
		{
			name:   "no customer",
			mutate: func(f *documentFixture, in *CreateDocumentInput) { in.CustomerName = "  " },
			code:   http.StatusUnprocessableEntity,
		},
		{
			name:   "unknown customer",
			mutate: func(f *documentFixture, in *CreateDocumentInput) { in.CustomerID = &missing },
			code:   http.StatusNotFound,
		},
		{
			name:   "unknown product",
			mutate: func(f *documentFixture, in *CreateDocumentInput) { in.Lines[0].ProductID = &missing },
			code:   http.StatusNotFound,
		},
		{
			name:   "tax rate out of range",
			mutate: func(f *documentFixture, in *CreateDocumentInput) { in.Lines[1].TaxRatePercent = billing.NumString("120") },
			code:   http.StatusUnprocessableEntity,
		},
		{
			name:   "unnamed free line",
			mutate: func(f *documentFixture, in *CreateDocumentInput) { in.Lines[1].Name = "" },
			code:   http.StatusUnprocessableEntity,
		},
		{
			name:   "issued without lines",
			mutate: func(f *documentFixture, in *CreateDocumentInput) { in.Status = enum.DocumentStatusIssued; in.Lines = nil },
			code:   http.StatusUnprocessableEntity,
		},
		{
			name:   "created canceled",
			mutate: func(f *documentFixture, in *CreateDocumentInput) { in.Status = enum.DocumentStatusCanceled },
			code:   http.StatusUnprocessableEntity,
		},
		{
			name: "partial without amount",
			mutate: func(f *documentFixture, in *CreateDocumentInput) {
				in.PaymentStatus = enum.PaymentStatusPartial
			},
			code: http.StatusUnprocessableEntity,
		},
		{
			name: "paid quotation",
			mutate: func(f *documentFixture, in *CreateDocumentInput) {
				in.Type = enum.DocumentTypeQuotation
				in.PaymentStatus = enum.PaymentStatusPaid
			},
			code: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newDocumentFixture(t)
			in := f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft)
			tc.mutate(f, in)

			_, err := f.svc.CreateDocument(context.Background(), in)
			assert.Equal(t, tc.code, appCode(t, err))
			assert.Empty(t, f.docs.docs)
		})
	}
}

func TestCreateDocument_PartialPayment(t *testing.T) {
	f := newDocumentFixture(t)
	input := f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusIssued)
	input.PaymentStatus = enum.PaymentStatusPartial
	input.PaidAmount = decPtr("100")

	doc, err := f.svc.CreateDocument(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, doc.PaymentStatus)
	assert.Equal(t, "100.00", doc.PaidAmount.StringFixed(2))
	assert.Equal(t, "184.90", doc.DueAmount.StringFixed(2))
}

func TestGetDocument_OtherUser(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft))
	require.NoError(t, err)

	_, err = f.svc.GetDocument(ctx, Actor{UserID: uuid.New()}, doc.ID)
	assert.Equal(t, http.StatusForbidden, appCode(t, err))

	got, err := f.svc.GetDocument(ctx, Actor{UserID: uuid.New(), Admin: true}, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Reference, got.Reference)

	_, err = f.svc.GetDocument(ctx, f.actor, uuid.New())
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestSwitchDocumentMode_ToggleTwiceRestoresTotals(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft))
	require.NoError(t, err)

	inclusive, err := f.svc.SwitchDocumentMode(ctx, f.actor, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TaxModeInclusive, inclusive.TaxMode)
	assert.Equal(t, "250.00", inclusive.Total.StringFixed(2))
	assert.Equal(t, "34.90", inclusive.Tax.StringFixed(2))
	assert.Equal(t, "118.00", inclusive.Lines[0].DisplayPrice.StringFixed(2))
	assert.True(t, inclusive.Lines[0].BasePrice.Equal(dec("100")))

	back, err := f.svc.SwitchDocumentMode(ctx, f.actor, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TaxModeExclusive, back.TaxMode)
	assert.Equal(t, doc.Total.StringFixed(2), back.Total.StringFixed(2))
	assert.Equal(t, doc.DueAmount.StringFixed(2), back.DueAmount.StringFixed(2))
	assert.Equal(t, "100.00", back.Lines[0].DisplayPrice.StringFixed(2))
}

func TestSwitchDocumentMode_FinePercentagesKeepTotals(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	input := &CreateDocumentInput{
		Actor:  f.actor,
		Type:   enum.DocumentTypeInvoice,
		Status: enum.DocumentStatusDraft,
		DocumentInput: DocumentInput{
			CustomerName: "Walk-in",
			Lines: []DocumentLineInput{
				{ProductID: &f.rice.ID, Quantity: billing.NumString("2"), DiscountPercent: billing.NumString("12.345")},
			},
		},
	}

	doc, err := f.svc.CreateDocument(ctx, input)
	require.NoError(t, err)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "12.35", doc.Lines[0].DiscountPercent.String())
	assert.Equal(t, "175.30", doc.SubTotal.StringFixed(2))
	assert.Equal(t, "31.55", doc.Tax.StringFixed(2))
	assert.Equal(t, "206.85", doc.Total.StringFixed(2))

	_, err = f.svc.SwitchDocumentMode(ctx, f.actor, doc.ID)
	require.NoError(t, err)
	back, err := f.svc.SwitchDocumentMode(ctx, f.actor, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, doc.SubTotal.StringFixed(2), back.SubTotal.StringFixed(2))
	assert.Equal(t, doc.Tax.StringFixed(2), back.Tax.StringFixed(2))
	assert.Equal(t, doc.Total.StringFixed(2), back.Total.StringFixed(2))
	assert.True(t, back.Lines[0].DiscountPercent.Equal(dec("12.35")))
}

func TestUpdateDocument_DraftOnly(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft))
	require.NoError(t, err)

	update := f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft).DocumentInput
	update.Lines = update.Lines[1:]
	update.ExtraCharge = billing.NumericInput{}

	updated, err := f.svc.UpdateDocument(ctx, &UpdateDocumentInput{Actor: f.actor, ID: doc.ID, DocumentInput: update})
	require.NoError(t, err)
	assert.Equal(t, doc.Reference, updated.Reference)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, "52.50", updated.Total.StringFixed(2))

	_, err = f.svc.UpdateStatus(ctx, f.actor, doc.ID, enum.DocumentStatusIssued)
	require.NoError(t, err)

	_, err = f.svc.UpdateDocument(ctx, &UpdateDocumentInput{Actor: f.actor, ID: doc.ID, DocumentInput: update})
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	_, err = f.svc.SwitchDocumentMode(ctx, f.actor, doc.ID)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	err = f.svc.DeleteDocument(ctx, f.actor, doc.ID)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestUpdateStatus_Transitions(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft))
	require.NoError(t, err)

	issued, err := f.svc.UpdateStatus(ctx, f.actor, doc.ID, enum.DocumentStatusIssued)
	require.NoError(t, err)
	assert.Equal(t, enum.DocumentStatusIssued, issued.Status)

	_, err = f.svc.UpdateStatus(ctx, f.actor, doc.ID, enum.DocumentStatusDraft)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))

	_, err = f.svc.UpdateStatus(ctx, f.actor, doc.ID, enum.DocumentStatusCanceled)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.actor, doc.ID, enum.DocumentStatusIssued)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestUpdateStatus_EmptyDraftCannotBeIssued(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	input := f.scenarioC(enum.DocumentTypeEstimate, enum.DocumentStatusDraft)
	input.Lines = nil

	doc, err := f.svc.CreateDocument(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "20.00", doc.Total.StringFixed(2))

	_, err = f.svc.UpdateStatus(ctx, f.actor, doc.ID, enum.DocumentStatusIssued)
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusIssued))
	require.NoError(t, err)

	partial, err := f.svc.RecordPayment(ctx, &RecordPaymentInput{Actor: f.actor, DocumentID: doc.ID, Amount: dec("100")})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, partial.PaymentStatus)
	assert.Equal(t, "100.00", partial.PaidAmount.StringFixed(2))
	assert.Equal(t, "184.90", partial.DueAmount.StringFixed(2))

	paid, err := f.svc.RecordPayment(ctx, &RecordPaymentInput{Actor: f.actor, DocumentID: doc.ID, Amount: dec("200"), Method: "upi"})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, "284.90", paid.PaidAmount.StringFixed(2))
	assert.True(t, paid.DueAmount.IsZero())

	require.Len(t, f.docs.payments, 2)
	assert.Equal(t, "cash", f.docs.payments[0].Method)
	assert.Equal(t, "upi", f.docs.payments[1].Method)
	assert.Equal(t, "200.00", f.docs.payments[1].Amount.StringFixed(2))

	_, err = f.svc.RecordPayment(ctx, &RecordPaymentInput{Actor: f.actor, DocumentID: doc.ID, Amount: dec("1")})
	assert.Equal(t, http.StatusConflict, appCode(t, err))
}

func TestRecordPayment_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		docType enum.DocumentType
		status  enum.DocumentStatus
		amount  string
		code    int
	}{
		{name: "draft", docType: enum.DocumentTypeInvoice, status: enum.DocumentStatusDraft, amount: "10", code: http.StatusBadRequest},
		{name: "quotation", docType: enum.DocumentTypeQuotation, status: enum.DocumentStatusIssued, amount: "10", code: http.StatusBadRequest},
		{name: "zero amount", docType: enum.DocumentTypeInvoice, status: enum.DocumentStatusIssued, amount: "0", code: http.StatusUnprocessableEntity},
		{name: "negative amount", docType: enum.DocumentTypeInvoice, status: enum.DocumentStatusIssued, amount: "-5", code: http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newDocumentFixture(t)
			ctx := context.Background()
			doc, err := f.svc.CreateDocument(ctx, f.scenarioC(tc.docType, tc.status))
			require.NoError(t, err)

			_, err = f.svc.RecordPayment(ctx, &RecordPaymentInput{Actor: f.actor, DocumentID: doc.ID, Amount: dec(tc.amount)})
			assert.Equal(t, tc.code, appCode(t, err))
			assert.Empty(t, f.docs.payments)
		})
	}
}

func TestDeleteDocument_Draft(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteDocument(ctx, f.actor, doc.ID))
	_, err = f.svc.GetDocument(ctx, f.actor, doc.ID)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestListDocuments_ScopedToActor(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateDocument(ctx, f.scenarioC(enum.DocumentTypeInvoice, enum.DocumentStatusDraft))
		require.NoError(t, err)
	}

	page, err := f.svc.ListDocuments(ctx, &ListDocumentsInput{Actor: f.actor})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(3), page.Pagination.Total)

	other, err := f.svc.ListDocuments(ctx, &ListDocumentsInput{Actor: Actor{UserID: uuid.New()}})
	require.NoError(t, err)
	assert.Empty(t, other.Items)
	assert.NotNil(t, other.Items)
}
