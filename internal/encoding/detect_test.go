package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibill/medibill/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "name,price,stock\nIbuprofène,6.50,85\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Ibuprofène" (è = 0xE8).
	input := []byte{
		'n', 'a', 'm', 'e', '\n',
		'I', 'b', 'u', 'p', 'r', 'o', 'f', 0xE8, 'n', 'e', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "name\nIbuprofène\n", string(got))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,stock\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "name,stock\n", string(got))
}
