package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billdesk-api/internal/config"
	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/entity"
)

func gstSlabs() config.BillingConfig {
	return config.BillingConfig{
		GSTSlabs:        []decimal.Decimal{dec("0"), dec("5"), dec("12"), dec("18"), dec("28")},
		EnforceGSTSlabs: true,
	}
}

func TestCreateProduct_PriceEntry(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		included bool
		rate     string
		wantBase string
	}{
		{name: "exclusive", price: "100", rate: "18", wantBase: "100.00"},
		{name: "inclusive", price: "118", included: true, rate: "18", wantBase: "100.00"},
		{name: "inclusive zero rate", price: "40", included: true, rate: "0", wantBase: "40.00"},
		{name: "negative clamps", price: "-3", rate: "5", wantBase: "0.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewProductService(newFakeProductRepo(), gstSlabs())

			p, err := svc.CreateProduct(context.Background(), &CreateProductInput{
				Actor: Actor{UserID: uuid.New()},
				Name:  "Item",
				ProductPriceInput: ProductPriceInput{
					Price:            billing.NumString(tc.price),
					PriceIncludesTax: tc.included,
					GSTRate:          billing.NumString(tc.rate),
				},
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantBase, p.BasePrice.StringFixed(2))
			assert.True(t, p.GSTRate.Equal(dec(tc.rate)))
			assert.NotEmpty(t, p.Code)
			assert.Equal(t, "pc", p.UnitLabel)
		})
	}
}

func TestCreateProduct_Rejections(t *testing.T) {
	existing := testProduct("DUP")

	tests := []struct {
		name  string
		input CreateProductInput
		code  int
	}{
		{name: "missing name", input: CreateProductInput{Name: " "}, code: http.StatusUnprocessableEntity},
		{name: "duplicate code", input: CreateProductInput{Name: "Tea", Code: "DUP"}, code: http.StatusConflict},
		{name: "rate above 100", input: CreateProductInput{Name: "Tea", ProductPriceInput: ProductPriceInput{GSTRate: billing.NumString("101")}}, code: http.StatusUnprocessableEntity},
		{name: "not a slab", input: CreateProductInput{Name: "Tea", ProductPriceInput: ProductPriceInput{GSTRate: billing.NumString("7")}}, code: http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewProductService(newFakeProductRepo(existing), gstSlabs())
			_, err := svc.CreateProduct(context.Background(), &tc.input)
			assert.Equal(t, tc.code, appCode(t, err))
		})
	}
}

func TestCreateProduct_SlabsNotEnforced(t *testing.T) {
	cfg := gstSlabs()
	cfg.EnforceGSTSlabs = false
	svc := NewProductService(newFakeProductRepo(), cfg)

	p, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:              "Tea",
		ProductPriceInput: ProductPriceInput{Price: billing.NumString("10"), GSTRate: billing.NumString("7")},
	})
	require.NoError(t, err)
	assert.True(t, p.GSTRate.Equal(dec("7")))
}

func TestUpdateProduct_RateOnlyKeepsBasePrice(t *testing.T) {
	actor := Actor{UserID: uuid.New()}
	product := testProduct("TEA")
	product.UserID = actor.UserID
	svc := NewProductService(newFakeProductRepo(product), gstSlabs())

	updated, err := svc.UpdateProduct(context.Background(), &UpdateProductInput{
		Actor:             actor,
		ID:                product.ID,
		ProductPriceInput: ProductPriceInput{GSTRate: billing.NumString("12")},
	})
	require.NoError(t, err)
	assert.True(t, updated.BasePrice.Equal(product.BasePrice))
	assert.True(t, updated.GSTRate.Equal(dec("12")))

	_, err = svc.UpdateProduct(context.Background(), &UpdateProductInput{Actor: Actor{UserID: uuid.New()}, ID: product.ID})
	assert.Equal(t, http.StatusForbidden, appCode(t, err))
}

func testProduct(code string) entity.Product {
	return entity.Product{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      "Masala Tea",
		Code:      code,
		UnitLabel: "pkt",
		BasePrice: dec("42.50"),
		GSTRate:   dec("5"),
	}
}
