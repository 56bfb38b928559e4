package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren-dev/finsight/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Date,Description,Amount\n2024-01-05,Café supplies,12.50\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Café" with é encoded as Windows-1252 0xE9.
	input := []byte{'C', 'a', 'f', 0xE9, ',', '1', '2', '.', '5', '0', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Café,12.50\n", string(got))
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Amount\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Date,Amount\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "Hi\n" as UTF-16 little-endian with BOM.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00, '\n', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Hi\n", string(got))
}
