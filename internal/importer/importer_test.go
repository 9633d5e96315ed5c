package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibill/medibill/internal/importer"
)

func TestService_Parse(t *testing.T) {
	input := strings.Join([]string{
		"name,description,price,stock,expiry_date,category,manufacturer",
		"Paracetamol,Pain reliever and fever reducer,5.99,100,2025-12-31,Pain Relief,MedPharm",
		"Loratadine,,8.75,75,2025-06-30,Allergy,AllergyCare",
		"",
	}, "\n")

	svc := importer.NewService()

	params, err := svc.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Paracetamol", params[0].Name)
	assert.Equal(t, "Pain reliever and fever reducer", params[0].Description)
	assert.True(t, params[0].Price.Equal(decimal.RequireFromString("5.99")))
	assert.Equal(t, 100, params[0].Stock)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), params[0].ExpiryDate)
	assert.Equal(t, "Pain Relief", params[0].Category)
	assert.Equal(t, "MedPharm", params[0].Manufacturer)

	assert.Equal(t, "Loratadine", params[1].Name)
	assert.Empty(t, params[1].Description)
}

func TestService_Parse_ColumnOrderIndependent(t *testing.T) {
	input := "stock,name,price\n40,Metformin,15.25\n"

	svc := importer.NewService()

	params, err := svc.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Metformin", params[0].Name)
	assert.Equal(t, 40, params[0].Stock)
}

func TestService_Parse_Errors(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantErr string
	}

	tests := []testCase{
		{
			name:    "MissingRequiredColumn",
			input:   "name,description\nParacetamol,x\n",
			wantErr: "missing required column",
		},
		{
			name:    "BadPrice",
			input:   "name,price,stock\nParacetamol,abc,10\n",
			wantErr: "line 2",
		},
		{
			name:    "BadStock",
			input:   "name,price,stock\nParacetamol,5.99,lots\n",
			wantErr: "line 2",
		},
		{
			name:    "MissingName",
			input:   "name,price,stock\n,5.99,10\n",
			wantErr: "name is required",
		},
		{
			name:    "EmptyFile",
			input:   "",
			wantErr: "empty file",
		},
	}

	svc := importer.NewService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
