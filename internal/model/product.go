package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ProductInfo is the inbound description of a scraped listing. Only the
// title is required.
type ProductInfo struct {
	Title          string
	Brand          string
	Description    string
	SourceCategory string
	SourcePrice    float64
}

// SearchText returns the lowercased concatenation of title, brand and
// description used for keyword scoring.
func (p ProductInfo) SearchText() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Title, p.Brand, p.Description} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// NormalizeTitle canonicalizes a title for hashing and fuzzy lookup:
// lowercased with runs of whitespace collapsed to single spaces.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// TitleHash returns the hex SHA-256 of the normalized title. It is the
// unique key for learning records.
func TitleHash(title string) string {
	sum := sha256.Sum256([]byte(NormalizeTitle(title)))
	return hex.EncodeToString(sum[:])
}
