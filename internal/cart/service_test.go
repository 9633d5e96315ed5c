package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/medibill/medibill/internal/bill"
	"github.com/medibill/medibill/internal/cart"
	"github.com/medibill/medibill/internal/customer"
	"github.com/medibill/medibill/internal/medicine"
)

type mocks struct {
	inventory *cart.MockInventory
	customers *cart.MockCustomers
	ledger    *cart.MockLedger
}

func newService(t *testing.T) (*cart.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocks{
		inventory: cart.NewMockInventory(ctrl),
		customers: cart.NewMockCustomers(ctrl),
		ledger:    cart.NewMockLedger(ctrl),
	}

	return cart.NewService(m.inventory, m.customers, m.ledger), m
}

func paracetamol() *medicine.Medicine {
	return &medicine.Medicine{
		ID:    uuid.MustParse("7d3e7a3e-0000-4000-8000-000000000001"),
		Name:  "Paracetamol",
		Price: decimal.RequireFromString("5.99"),
		Stock: 100,
	}
}

func loratadine() *medicine.Medicine {
	return &medicine.Medicine{
		ID:    uuid.MustParse("7d3e7a3e-0000-4000-8000-000000000002"),
		Name:  "Loratadine",
		Price: decimal.RequireFromString("8.75"),
		Stock: 75,
	}
}

func TestService_AddItem(t *testing.T) {
	type testCase struct {
		name      string
		quantity  int
		setupMock func(m mocks)
		wantErr   error
		wantItems int
	}

	med := paracetamol()

	tests := []testCase{
		{
			name:     "Success",
			quantity: 2,
			setupMock: func(m mocks) {
				m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)
			},
			wantItems: 1,
		},
		{
			name:     "UnknownMedicine",
			quantity: 2,
			setupMock: func(m mocks) {
				m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(nil, medicine.ErrNotFound)
			},
			wantErr: medicine.ErrNotFound,
		},
		{
			name:     "ExceedsStock",
			quantity: 101,
			setupMock: func(m mocks) {
				m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)
			},
			wantErr: cart.ErrInsufficientStock,
		},
		{
			name:      "ZeroQuantityIsNoop",
			quantity:  0,
			setupMock: func(m mocks) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			err := svc.AddItem(context.Background(), med.ID, tt.quantity)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Len(t, svc.Session().Items, tt.wantItems)
		})
	}
}

func TestService_AddItem_SnapshotsNameAndPrice(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)

	require.NoError(t, svc.AddItem(context.Background(), med.ID, 3))

	items := svc.Session().Items
	require.Len(t, items, 1)
	assert.Equal(t, "Paracetamol", items[0].MedicineName)
	assert.True(t, items[0].UnitPrice.Equal(med.Price))
	assert.Equal(t, 3, items[0].Quantity)
	assert.LessOrEqual(t, items[0].Quantity, med.Stock)
}

func TestService_AddItem_MergesAndRevalidatesCombinedQuantity(t *testing.T) {
	svc, m := newService(t)

	med := paracetamol()
	med.Stock = 4

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil).Times(3)

	require.NoError(t, svc.AddItem(context.Background(), med.ID, 2))
	require.NoError(t, svc.AddItem(context.Background(), med.ID, 2))

	items := svc.Session().Items
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	// The combined quantity, not just the increment, is checked: one
	// more unit pushes past stock and the line must stay unchanged.
	err := svc.AddItem(context.Background(), med.ID, 1)
	require.ErrorIs(t, err, cart.ErrInsufficientStock)

	items = svc.Session().Items
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestService_RemoveItem(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)
	require.NoError(t, svc.AddItem(context.Background(), med.ID, 1))

	// Removing something that was never added is a no-op.
	svc.RemoveItem(uuid.New())
	assert.Len(t, svc.Session().Items, 1)

	svc.RemoveItem(med.ID)
	assert.Empty(t, svc.Session().Items)
}

func TestService_SetItemQuantity(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()
	med.Stock = 10

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil).AnyTimes()

	require.NoError(t, svc.AddItem(context.Background(), med.ID, 2))

	require.NoError(t, svc.SetItemQuantity(context.Background(), med.ID, 7))
	assert.Equal(t, 7, svc.Session().Items[0].Quantity)

	err := svc.SetItemQuantity(context.Background(), med.ID, 11)
	require.ErrorIs(t, err, cart.ErrInsufficientStock)
	assert.Equal(t, 7, svc.Session().Items[0].Quantity)

	// Quantities below one never reach the stock check.
	require.NoError(t, svc.SetItemQuantity(context.Background(), med.ID, 0))
	assert.Equal(t, 7, svc.Session().Items[0].Quantity)

	err = svc.SetItemQuantity(context.Background(), uuid.New(), 1)
	require.Error(t, err)
}

func TestService_SetItemQuantity_NotInCart(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)

	err := svc.SetItemQuantity(context.Background(), med.ID, 1)
	require.ErrorIs(t, err, cart.ErrNotInCart)
}

func TestService_Commit_Validation(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)

	// No name, no items.
	_, err := svc.Commit(context.Background(), false)
	require.ErrorIs(t, err, cart.ErrEmptyCustomerName)

	// Items but still no name: cart must be left untouched.
	require.NoError(t, svc.AddItem(context.Background(), med.ID, 2))

	_, err = svc.Commit(context.Background(), false)
	require.ErrorIs(t, err, cart.ErrEmptyCustomerName)
	assert.Len(t, svc.Session().Items, 1)

	// Name but no items.
	svc.Clear()
	svc.SetCustomerName("John Doe")

	_, err = svc.Commit(context.Background(), false)
	require.ErrorIs(t, err, cart.ErrEmptyCart)
}

func TestService_Commit_TotalsAndSideEffects(t *testing.T) {
	svc, m := newService(t)

	medX := paracetamol()
	medY := loratadine()

	m.inventory.EXPECT().Get(gomock.Any(), medX.ID).Return(medX, nil)
	m.inventory.EXPECT().Get(gomock.Any(), medY.ID).Return(medY, nil)

	require.NoError(t, svc.AddItem(context.Background(), medX.ID, 2))
	require.NoError(t, svc.AddItem(context.Background(), medY.ID, 1))
	svc.SetCustomerName("John Doe")
	svc.SetDiscountAmount(decimal.RequireFromString("1.00"))

	existing := &customer.Customer{ID: uuid.New(), Name: "John Doe"}
	billID := uuid.New()

	m.customers.EXPECT().FindByName(gomock.Any(), "John Doe").Return(existing, nil)
	m.ledger.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *bill.Bill) error {
			b.ID = billID
			b.CreatedAt = time.Now()
			return nil
		})
	m.customers.EXPECT().
		RecordVisit(gomock.Any(), existing.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, amount decimal.Decimal, _ time.Time) error {
			assert.True(t, amount.Equal(decimal.RequireFromString("19.73")))
			return nil
		})
	m.inventory.EXPECT().DecrementStock(gomock.Any(), medX.ID, 2).Return(nil)
	m.inventory.EXPECT().DecrementStock(gomock.Any(), medY.ID, 1).Return(nil)

	b, err := svc.Commit(context.Background(), true)
	require.NoError(t, err)
	require.NotNil(t, b)

	// 5.99 x 2 + 8.75 = 20.73; minus 1.00 discount = 19.73.
	assert.True(t, b.Subtotal().Equal(decimal.RequireFromString("20.73")))
	assert.True(t, b.TotalAmount.Equal(decimal.RequireFromString("19.73")))
	assert.Equal(t, billID, b.ID)
	assert.Equal(t, "John Doe", b.CustomerName)
	require.NotNil(t, b.CustomerID)
	assert.Equal(t, existing.ID, *b.CustomerID)
	assert.True(t, b.Paid)

	// Session is reset after a successful commit.
	session := svc.Session()
	assert.Empty(t, session.Items)
	assert.Empty(t, session.CustomerName)
	assert.Nil(t, session.CustomerID)
	assert.True(t, session.DiscountAmount.IsZero())
}

func TestService_Commit_DiscountClampedAtZero(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)

	require.NoError(t, svc.AddItem(context.Background(), med.ID, 1))
	svc.SetCustomerName("Jane")
	svc.SetDiscountAmount(decimal.RequireFromString("100.00"))

	m.customers.EXPECT().FindByName(gomock.Any(), "Jane").Return(nil, nil)
	m.customers.EXPECT().
		Create(gomock.Any(), customer.CreateParams{Name: "Jane"}).
		Return(&customer.Customer{ID: uuid.New(), Name: "Jane"}, nil)
	m.ledger.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.customers.EXPECT().RecordVisit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.inventory.EXPECT().DecrementStock(gomock.Any(), med.ID, 1).Return(nil)

	b, err := svc.Commit(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, b.TotalAmount.IsZero())
	// The discount itself is stored unclamped.
	assert.True(t, b.DiscountAmount.Equal(decimal.RequireFromString("100.00")))
}

func TestService_Commit_CustomerCreationFailureDegrades(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)

	require.NoError(t, svc.AddItem(context.Background(), med.ID, 1))
	svc.SetCustomerName("Walk In")

	m.customers.EXPECT().FindByName(gomock.Any(), "Walk In").Return(nil, nil)
	m.customers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
	m.ledger.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.inventory.EXPECT().DecrementStock(gomock.Any(), med.ID, 1).Return(nil)

	// The bill is still created, just unlinked; no aggregate update.
	b, err := svc.Commit(context.Background(), false)
	require.NoError(t, err)
	assert.Nil(t, b.CustomerID)
	assert.Equal(t, "Walk In", b.CustomerName)
}

func TestService_Commit_AttachedCustomerSkipsLookup(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()
	customerID := uuid.New()

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)

	require.NoError(t, svc.AddItem(context.Background(), med.ID, 1))
	svc.SetCustomerName("John Doe")
	svc.SetCustomerID(&customerID)

	m.ledger.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.customers.EXPECT().RecordVisit(gomock.Any(), customerID, gomock.Any(), gomock.Any()).Return(nil)
	m.inventory.EXPECT().DecrementStock(gomock.Any(), med.ID, 1).Return(nil)

	b, err := svc.Commit(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, b.CustomerID)
	assert.Equal(t, customerID, *b.CustomerID)
}

func TestService_Commit_LedgerFailureKeepsSession(t *testing.T) {
	svc, m := newService(t)
	med := paracetamol()

	m.inventory.EXPECT().Get(gomock.Any(), med.ID).Return(med, nil)

	require.NoError(t, svc.AddItem(context.Background(), med.ID, 2))
	svc.SetCustomerName("John Doe")

	m.customers.EXPECT().FindByName(gomock.Any(), "John Doe").Return(nil, nil)
	m.customers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&customer.Customer{ID: uuid.New()}, nil)
	m.ledger.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	b, err := svc.Commit(context.Background(), false)
	require.Error(t, err)
	assert.Nil(t, b)

	// The operator can retry: nothing was cleared, no stock was touched.
	session := svc.Session()
	assert.Equal(t, "John Doe", session.CustomerName)
	require.Len(t, session.Items, 1)
	assert.Equal(t, 2, session.Items[0].Quantity)
}

func TestSession_Totals(t *testing.T) {
	session := cart.Session{
		Items: []bill.Item{
			{Quantity: 2, UnitPrice: decimal.RequireFromString("5.99")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("8.75")},
		},
		DiscountAmount: decimal.RequireFromString("1.00"),
	}

	assert.True(t, session.Subtotal().Equal(decimal.RequireFromString("20.73")))
	assert.True(t, session.Total().Equal(decimal.RequireFromString("19.73")))

	session.DiscountAmount = decimal.RequireFromString("25.00")
	assert.True(t, session.Total().IsZero())
}
