package excelimport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func giftCardHeader() []any {
	return []any{"code", "amount", "status", "customer_name", "customer_email", "purchase_date", "expiry_date", "redeemed_date", "notes"}
}

func TestParseGiftCardRows_ValidSheet(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		giftCardHeader(),
		{"GC-001", "15000", "", "Ana Gomez", "ana@example.com", "2026-03-01", "2026-04-15", "", "cumple"},
		{"GC-002", "8000.50", "", "Laura Diaz", "", "2026-03-05", "", "2026-03-20", ""},
	})

	rows, result, err := ParseGiftCardRows(data, 100)
	require.NoError(t, err)

	assert.True(t, result.IsValid())
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.ValidRows)
	require.Len(t, rows, 2)

	assert.Equal(t, "GC-001", rows[0].Code)
	assert.Equal(t, "15000", rows[0].Amount.String())
	assert.Equal(t, "Ana Gomez", rows[0].CustomerName)
	require.NotNil(t, rows[0].ExpiryDate)
	assert.Nil(t, rows[0].RedeemedDate)

	assert.Nil(t, rows[1].ExpiryDate)
	require.NotNil(t, rows[1].RedeemedDate)
	assert.Equal(t, 3, rows[1].LineNumber)
}

func TestParseGiftCardRows_PartialFailure(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		giftCardHeader(),
		{"GC-001", "15000", "", "Ana Gomez", "", "2026-03-01", "", "", ""},
		{"", "8000", "", "Laura Diaz", "", "2026-03-05", "", "", ""},
		{"GC-003", "not-a-number", "", "Carla Ruiz", "", "2026-03-06", "", "", ""},
		{"GC-004", "5000", "", "Sofia Paz", "", "bad-date", "", "", ""},
	})

	rows, result, err := ParseGiftCardRows(data, 100)
	require.NoError(t, err)

	// Bad rows fail individually, good rows survive
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 1, result.ValidRows)
	assert.Equal(t, 3, result.ErrorRows)
	require.Len(t, rows, 1)
	assert.Equal(t, "GC-001", rows[0].Code)

	codes := make(map[string]bool)
	for _, rowErr := range result.Errors {
		codes[rowErr.Code] = true
	}
	assert.True(t, codes[ErrCodeImportRequiredField])
	assert.True(t, codes[ErrCodeImportInvalidType])
	assert.True(t, codes[ErrCodeImportInvalidFormat])
}

func TestParseGiftCardRows_DuplicateInFile(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		giftCardHeader(),
		{"GC-001", "15000", "", "Ana Gomez", "", "2026-03-01", "", "", ""},
		{"GC-001", "9000", "", "Laura Diaz", "", "2026-03-02", "", "", ""},
	})

	rows, result, err := ParseGiftCardRows(data, 100)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, result.ErrorRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeImportDuplicateInFile, result.Errors[0].Code)
	assert.Equal(t, 3, result.Errors[0].Row)
}

func TestParseGiftCardRows_MissingHeaders(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"code", "customer_name"},
		{"GC-001", "Ana Gomez"},
	})

	rows, result, err := ParseGiftCardRows(data, 100)
	require.NoError(t, err)

	assert.Nil(t, rows)
	require.NotNil(t, result)
	assert.False(t, len(result.Errors) == 0)
	for _, rowErr := range result.Errors {
		assert.Equal(t, ErrCodeImportMissingHeader, rowErr.Code)
	}
}

func TestParseGiftCardRows_NegativeAmount(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		giftCardHeader(),
		{"GC-001", "-500", "", "Ana Gomez", "", "2026-03-01", "", "", ""},
	})

	rows, result, err := ParseGiftCardRows(data, 100)
	require.NoError(t, err)

	assert.Empty(t, rows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeImportInvalidValue, result.Errors[0].Code)
}

func TestParseGiftCardRows_ExpiryBeforePurchase(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		giftCardHeader(),
		{"GC-001", "1000", "", "Ana Gomez", "", "2026-03-10", "2026-03-01", "", ""},
	})

	rows, result, err := ParseGiftCardRows(data, 100)
	require.NoError(t, err)

	assert.Empty(t, rows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeImportInvalidValue, result.Errors[0].Code)
}

func TestParseGiftCardRows_ErrorTruncation(t *testing.T) {
	sheet := [][]any{giftCardHeader()}
	for i := 0; i < 10; i++ {
		sheet = append(sheet, []any{"", "", "", "", "", "", "", "", ""})
	}
	// Rows that are entirely empty get skipped, so give each row a marker
	for i := 1; i < len(sheet); i++ {
		sheet[i][8] = "x"
	}

	data := buildWorkbook(t, sheet)

	_, result, err := ParseGiftCardRows(data, 3)
	require.NoError(t, err)

	assert.True(t, result.IsTruncated)
	assert.Len(t, result.Errors, 3)
	assert.Greater(t, result.TotalErrors, 3)
}

func TestNewParser_RejectsGarbage(t *testing.T) {
	_, err := NewParser([]byte("not an xlsx file"))
	assert.Equal(t, ErrInvalidFile, err)

	_, err = NewParser(nil)
	assert.Equal(t, ErrEmptyFile, err)
}
