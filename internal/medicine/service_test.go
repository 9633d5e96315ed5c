package medicine_test

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

	"github.com/medibill/medibill/internal/medicine"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    medicine.CreateParams
		setupMock func(m *medicine.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: medicine.CreateParams{
				Name:         "Paracetamol 500mg",
				Description:  "Pain reliever and fever reducer",
				Price:        decimal.RequireFromString("5.99"),
				Stock:        100,
				ExpiryDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
				Category:     "Analgesic",
				Manufacturer: "Acme Pharma",
			},
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().
					CreateMedicine(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, med *medicine.Medicine) error {
						med.ID = uuid.New()
						med.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "EmptyName",
			params: medicine.CreateParams{
				Price: decimal.RequireFromString("5.99"),
				Stock: 10,
			},
			wantErr: medicine.ErrEmptyName,
		},
		{
			name: "NegativePrice",
			params: medicine.CreateParams{
				Name:  "Paracetamol 500mg",
				Price: decimal.RequireFromString("-0.01"),
			},
			wantErr: medicine.ErrNegativePrice,
		},
		{
			name: "NegativeStock",
			params: medicine.CreateParams{
				Name:  "Paracetamol 500mg",
				Price: decimal.RequireFromString("5.99"),
				Stock: -1,
			},
			wantErr: medicine.ErrNegativeStock,
		},
		{
			name: "RepoError",
			params: medicine.CreateParams{
				Name:  "Paracetamol 500mg",
				Price: decimal.RequireFromString("5.99"),
				Stock: 100,
			},
			setupMock: func(m *medicine.MockRepository) {
				m.EXPECT().
					CreateMedicine(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := medicine.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := medicine.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.params.Name, got.Name)
			assert.Equal(t, tt.params.Stock, got.Stock)
		})
	}
}

func TestService_Update_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := medicine.NewMockRepository(ctrl)

	svc := medicine.NewService(repo)
	err := svc.Update(context.Background(), &medicine.Medicine{
		ID:    uuid.New(),
		Name:  "Paracetamol 500mg",
		Price: decimal.RequireFromString("5.99"),
		Stock: -5,
	})
	assert.ErrorIs(t, err, medicine.ErrNegativeStock)
}

func TestService_DecrementStock(t *testing.T) {
	t.Run("PositiveQuantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()

		repo := medicine.NewMockRepository(ctrl)
		repo.EXPECT().DecrementStock(gomock.Any(), id, 3).Return(nil)

		svc := medicine.NewService(repo)
		require.NoError(t, svc.DecrementStock(context.Background(), id, 3))
	})

	t.Run("ZeroQuantityIsNoop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// No expectation: the repo must not be touched.
		repo := medicine.NewMockRepository(ctrl)

		svc := medicine.NewService(repo)
		require.NoError(t, svc.DecrementStock(context.Background(), uuid.New(), 0))
	})

	t.Run("NegativeQuantityIsNoop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := medicine.NewMockRepository(ctrl)

		svc := medicine.NewService(repo)
		require.NoError(t, svc.DecrementStock(context.Background(), uuid.New(), -2))
	})
}
