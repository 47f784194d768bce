package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --- Shared Custom Types ---

// Money is an amount in whole Rupiah. The currency has no minor unit.
type Money int64

// UnmarshalJSON accepts integers, floats (rounded) and numeric strings, since
// the remote service is not consistent about how it encodes prices.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("money: invalid amount %q", s)
	}
	*m = Money(math.Round(f))
	return nil
}

// Times multiplies a unit price by a quantity.
func (m Money) Times(quantity int) Money {
	return m * Money(quantity)
}

// Pagination
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// Response standardizes API responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}
