package invoices

import (
	"fmt"
	"strconv"
	"strings"
)

const numberPrefix = "INV"

// FirstNumber is the number assigned to an owner's first invoice.
const FirstNumber = "INV-0001"

// NextNumber derives the next invoice number from the owner's most recent
// one. An empty last number means no invoice exists yet.
func NextNumber(last string) (string, error) {
	if last == "" {
		return FirstNumber, nil
	}
	parts := strings.SplitN(last, "-", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invoices: malformed invoice number %q", last)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invoices: malformed invoice number %q: %w", last, err)
	}
	return fmt.Sprintf("%s-%04d", numberPrefix, n+1), nil
}
