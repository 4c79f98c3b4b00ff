// Package model holds the read/write representations of the backend's
// entities. The backend is authoritative for every field; these types
// only exist so the client can decode, display and re-submit them.
package model

import "github.com/shopspring/decimal"

func init() {
	// The backend (Spring/Jackson) expects and emits plain JSON numbers
	// for money fields, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Page is the Spring Data pagination envelope returned by every
// paginated list endpoint.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
	Empty         bool `json:"empty"`
}
