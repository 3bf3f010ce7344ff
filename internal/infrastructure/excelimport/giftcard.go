package excelimport

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Gift card sheet columns. The sheet must carry exactly these headers;
// extra columns are ignored. The status column is accepted for
// round-trip compatibility with exports but its value is never used:
// status always derives from the dates.
const (
	ColCode          = "code"
	ColAmount        = "amount"
	ColStatus        = "status"
	ColCustomerName  = "customer_name"
	ColCustomerEmail = "customer_email"
	ColPurchaseDate  = "purchase_date"
	ColExpiryDate    = "expiry_date"
	ColRedeemedDate  = "redeemed_date"
	ColNotes         = "notes"
)

// GiftCardRequiredHeaders are the headers a gift card sheet must have
var GiftCardRequiredHeaders = []string{
	ColCode,
	ColAmount,
	ColCustomerName,
	ColPurchaseDate,
}

// GiftCardRow is one validated row of a gift card import sheet
type GiftCardRow struct {
	LineNumber    int
	Code          string
	Amount        decimal.Decimal
	CustomerName  string
	CustomerEmail string
	PurchaseDate  time.Time
	ExpiryDate    *time.Time
	RedeemedDate  *time.Time
	Notes         string
}

// dateFormats are tried in order when parsing date cells. Excel cells
// formatted as dates arrive as strings in the sheet's display format.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02 15:04:05",
	"01-02-06",
}

func parseDate(value string) (time.Time, bool) {
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ParseGiftCardRows validates a gift card workbook and returns the rows
// that passed validation alongside the errors of those that did not.
// One bad row never aborts the batch.
func ParseGiftCardRows(data []byte, maxErrors int) ([]GiftCardRow, *ValidationResult, error) {
	parser, err := NewParser(data)
	if err != nil {
		return nil, nil, err
	}

	if missing := parser.ValidateHeaders(GiftCardRequiredHeaders); len(missing) > 0 {
		result := NewValidationResult()
		ec := NewErrorCollection(maxErrors)
		for _, header := range missing {
			ec.Add(NewRowError(1, header, ErrCodeImportMissingHeader, "required header is missing"))
		}
		result.SetErrors(ec)
		return nil, result, nil
	}

	rows := parser.ReadAllRows()
	if len(rows) == 0 {
		return nil, nil, ErrNoDataRows
	}

	ec := NewErrorCollection(maxErrors)
	result := NewValidationResult()
	seenCodes := make(map[string]int, len(rows))
	valid := make([]GiftCardRow, 0, len(rows))

	for _, row := range rows {
		parsed, ok := parseGiftCardRow(row, seenCodes, ec)
		if !ok {
			continue
		}
		valid = append(valid, parsed)
		result.AddPreview(map[string]any{
			ColCode:         parsed.Code,
			ColAmount:       parsed.Amount.String(),
			ColCustomerName: parsed.CustomerName,
			ColPurchaseDate: parsed.PurchaseDate.Format("2006-01-02"),
		})
	}

	result.SetCounts(len(rows), len(valid), len(rows)-len(valid))
	result.SetErrors(ec)
	return valid, result, nil
}

// parseGiftCardRow validates a single row. Every failing field is
// reported, not just the first one, so a fixed sheet imports in one go.
func parseGiftCardRow(row *Row, seenCodes map[string]int, ec *ErrorCollection) (GiftCardRow, bool) {
	ok := true
	parsed := GiftCardRow{
		LineNumber:    row.LineNumber,
		CustomerEmail: row.Get(ColCustomerEmail),
		Notes:         row.Get(ColNotes),
	}

	code := strings.TrimSpace(row.Get(ColCode))
	if code == "" {
		ec.AddRequiredError(row.LineNumber, ColCode)
		ok = false
	} else if _, dup := seenCodes[code]; dup {
		ec.AddDuplicateError(row.LineNumber, ColCode, code, false)
		ok = false
	} else {
		seenCodes[code] = row.LineNumber
		parsed.Code = code
	}

	amountStr := row.Get(ColAmount)
	if amountStr == "" {
		ec.AddRequiredError(row.LineNumber, ColAmount)
		ok = false
	} else if amount, err := decimal.NewFromString(amountStr); err != nil {
		ec.AddTypeError(row.LineNumber, ColAmount, "a decimal number", amountStr)
		ok = false
	} else if !amount.IsPositive() {
		ec.AddValueError(row.LineNumber, ColAmount, "amount must be positive", amountStr)
		ok = false
	} else {
		parsed.Amount = amount
	}

	if name := strings.TrimSpace(row.Get(ColCustomerName)); name == "" {
		ec.AddRequiredError(row.LineNumber, ColCustomerName)
		ok = false
	} else {
		parsed.CustomerName = name
	}

	purchaseStr := row.Get(ColPurchaseDate)
	if purchaseStr == "" {
		ec.AddRequiredError(row.LineNumber, ColPurchaseDate)
		ok = false
	} else if purchase, parsedOK := parseDate(purchaseStr); !parsedOK {
		ec.AddFormatError(row.LineNumber, ColPurchaseDate, "YYYY-MM-DD", purchaseStr)
		ok = false
	} else {
		parsed.PurchaseDate = purchase
	}

	if expiryStr := row.Get(ColExpiryDate); expiryStr != "" {
		if expiry, parsedOK := parseDate(expiryStr); !parsedOK {
			ec.AddFormatError(row.LineNumber, ColExpiryDate, "YYYY-MM-DD", expiryStr)
			ok = false
		} else {
			parsed.ExpiryDate = &expiry
		}
	}

	if redeemedStr := row.Get(ColRedeemedDate); redeemedStr != "" {
		if redeemed, parsedOK := parseDate(redeemedStr); !parsedOK {
			ec.AddFormatError(row.LineNumber, ColRedeemedDate, "YYYY-MM-DD", redeemedStr)
			ok = false
		} else {
			parsed.RedeemedDate = &redeemed
		}
	}

	if parsed.ExpiryDate != nil && !parsed.PurchaseDate.IsZero() && parsed.ExpiryDate.Before(parsed.PurchaseDate) {
		ec.AddValueError(row.LineNumber, ColExpiryDate, "expiry date cannot precede purchase date", row.Get(ColExpiryDate))
		ok = false
	}

	return parsed, ok
}
