package table

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainRow   = "sift/row/v1"
	DomainTable = "sift/table/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RowKey computes the content-addressed identity of a row. Two rows with
// equal values in the same column order share a key; deduplication uses
// this as the duplicate criterion. Note that Int and Float cells holding
// the same numeric value hash identically (both encode as "1000"), which
// matches value-level duplicate semantics.
func RowKey(row []Value) (string, error) {
	canonical, err := CanonicalRow(row)
	if err != nil {
		return "", fmt.Errorf("RowKey: %w", err)
	}
	return hashWithDomain(DomainRow, canonical), nil
}

// Hash computes the content-addressed identity of the whole table,
// including column names, nominal types, order, and every cell.
func (t *Table) Hash() (string, error) {
	canonical, err := CanonicalTable(t)
	if err != nil {
		return "", fmt.Errorf("table hash: %w", err)
	}
	return hashWithDomain(DomainTable, canonical), nil
}

// MustRowKey is like RowKey but panics on error.
// Use only in tests or when the row is known to be valid.
func MustRowKey(row []Value) string {
	key, err := RowKey(row)
	if err != nil {
		panic(err)
	}
	return key
}
