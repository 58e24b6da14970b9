package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizgunduz/pazar/internal/domain"
)

// Cart-facing fake methods. The product catalog is a single configurable
// product.

func (f *fakeStore) GetProductByID(ctx context.Context, id pgtype.UUID) (*domain.Product, error) {
	if f.product != nil && f.product.ID == id {
		cp := *f.product
		return &cp, nil
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeStore) UpsertCartItem(ctx context.Context, userID, productID pgtype.UUID, quantity int32) error {
	for i := range f.cartItems {
		if f.cartItems[i].ProductID == productID {
			f.cartItems[i].Quantity += quantity
			return nil
		}
	}
	f.cartItems = append(f.cartItems, domain.CartItem{
		ID:        mustUUID("77777777-7777-7777-7777-777777777777"),
		ProductID: productID,
		Quantity:  quantity,
	})
	return nil
}

func (f *fakeStore) GetCartItem(ctx context.Context, userID, itemID pgtype.UUID) (*domain.CartItem, error) {
	for i := range f.cartItems {
		if f.cartItems[i].ID == itemID {
			cp := f.cartItems[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (f *fakeStore) SetCartItemQuantity(ctx context.Context, userID, itemID pgtype.UUID, quantity int32) error {
	for i := range f.cartItems {
		if f.cartItems[i].ID == itemID {
			f.cartItems[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

func (f *fakeStore) DeleteCartItem(ctx context.Context, userID, itemID pgtype.UUID) error {
	for i := range f.cartItems {
		if f.cartItems[i].ID == itemID {
			f.cartItems = append(f.cartItems[:i], f.cartItems[i+1:]...)
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

func productFixture(t *testing.T) *domain.Product {
	t.Helper()
	return &domain.Product{
		ID:       testUUID(t, testProductID),
		Name:     "Ceramic Mug",
		Price:    100,
		Stock:    5,
		IsActive: true,
	}
}

func TestCartAddItem(t *testing.T) {
	store := newFakeStore()
	store.product = productFixture(t)
	svc := NewCartService(store)

	summary, err := svc.AddItem(context.Background(), testUserID, testProductID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ItemCount)

	// Adding again increments the existing line.
	summary, err = svc.AddItem(context.Background(), testUserID, testProductID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Len(t, summary.Items, 1)
}

func TestCartAddItem_RejectsBadQuantityAndStock(t *testing.T) {
	store := newFakeStore()
	store.product = productFixture(t)
	svc := NewCartService(store)

	_, err := svc.AddItem(context.Background(), testUserID, testProductID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddItem(context.Background(), testUserID, testProductID, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCartAddItem_InactiveProductHidden(t *testing.T) {
	store := newFakeStore()
	store.product = productFixture(t)
	store.product.IsActive = false
	svc := NewCartService(store)

	_, err := svc.AddItem(context.Background(), testUserID, testProductID, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	store := newFakeStore()
	store.product = productFixture(t)
	svc := NewCartService(store)

	summary, err := svc.AddItem(context.Background(), testUserID, testProductID, 2)
	require.NoError(t, err)
	itemID := uuidString(summary.Items[0].ID)

	// The stock check reads the joined snapshot on the cart row.
	store.cartItems[0].Stock = 5

	summary, err = svc.UpdateItemQuantity(context.Background(), testUserID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.ItemCount)

	_, err = svc.UpdateItemQuantity(context.Background(), testUserID, itemID, 9)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCartRemoveItem(t *testing.T) {
	store := newFakeStore()
	store.product = productFixture(t)
	svc := NewCartService(store)

	summary, err := svc.AddItem(context.Background(), testUserID, testProductID, 2)
	require.NoError(t, err)
	itemID := uuidString(summary.Items[0].ID)

	summary, err = svc.RemoveItem(context.Background(), testUserID, itemID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	_, err = svc.RemoveItem(context.Background(), testUserID, itemID)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
}
