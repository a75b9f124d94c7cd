package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DocumentPrefix returns the numbering prefix for a document kind name
func DocumentPrefix(kind string) string {
	switch kind {
	case "sale", "touch-sale":
		return "INV"
	case "account-sale":
		return "ACC"
	case "cash-return", "account-return":
		return "CRN"
	case "order":
		return "ORD"
	case "quotation":
		return "QUO"
	}
	return "DOC"
}

// DocumentSeries is the part of a document number shared by one till's
// documents of one prefix, such as INV-01-
func DocumentSeries(prefix, tillNumber string) string {
	if tillNumber == "" {
		tillNumber = "00"
	}
	return prefix + "-" + tillNumber + "-"
}

// FormatDocumentNo builds a document number such as INV-01-000042
func FormatDocumentNo(prefix, tillNumber string, seq int64) string {
	return fmt.Sprintf("%s%06d", DocumentSeries(prefix, tillNumber), seq)
}

// GenerateReferenceNo generates a random reference such as IMP-1A2B3C4D
func GenerateReferenceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
