package customer_test

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

	"github.com/medibill/medibill/internal/customer"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: customer.CreateParams{
				Name:  "John Doe",
				Phone: "555-0101",
				Email: "john@example.com",
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			params:  customer.CreateParams{Name: "   "},
			wantErr: customer.ErrEmptyName,
		},
		{
			name:   "RepoError",
			params: customer.CreateParams{Name: "John Doe"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "John Doe", got.Name)
			assert.Zero(t, got.VisitCount)
			assert.True(t, got.TotalSpent.IsZero())
			assert.Nil(t, got.LastVisit)
		})
	}
}

func TestService_FindByName(t *testing.T) {
	directory := []*customer.Customer{
		{ID: uuid.New(), Name: "John Doe"},
		{ID: uuid.New(), Name: "Jane Johnson"},
		{ID: uuid.New(), Name: "Arjun Mehta"},
	}

	type testCase struct {
		name       string
		query      string
		wantName   string
		wantNil    bool
		skipLookup bool
	}

	tests := []testCase{
		{
			// "jo" matches both John Doe and Jane Johnson; the earliest
			// created customer wins.
			name:     "PrefixOfSeveralPicksEarliest",
			query:    "jo",
			wantName: "John Doe",
		},
		{
			name:     "CaseInsensitive",
			query:    "ARJUN",
			wantName: "Arjun Mehta",
		},
		{
			name:     "SubstringInsideName",
			query:    "ohns",
			wantName: "Jane Johnson",
		},
		{
			name:     "SurroundingWhitespaceIgnored",
			query:    "  doe  ",
			wantName: "John Doe",
		},
		{
			name:    "NoMatch",
			query:   "zyx",
			wantNil: true,
		},
		{
			name:       "EmptyQuery",
			query:      "   ",
			wantNil:    true,
			skipLookup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if !tt.skipLookup {
				repo.EXPECT().ListCustomers(gomock.Any()).Return(directory, nil)
			}

			svc := customer.NewService(repo)
			got, err := svc.FindByName(context.Background(), tt.query)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestService_FindByName_EmptyQuerySkipsRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No ListCustomers expectation: an empty query must not hit the repo.
	repo := customer.NewMockRepository(ctrl)

	svc := customer.NewService(repo)
	got, err := svc.FindByName(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_Update_EmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)

	svc := customer.NewService(repo)
	err := svc.Update(context.Background(), &customer.Customer{ID: uuid.New(), Name: ""})
	assert.ErrorIs(t, err, customer.ErrEmptyName)
}

func TestService_RecordVisit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	amount := decimal.RequireFromString("19.73")
	at := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().RecordVisit(gomock.Any(), id, amount, at).Return(nil)

	svc := customer.NewService(repo)
	require.NoError(t, svc.RecordVisit(context.Background(), id, amount, at))
}
