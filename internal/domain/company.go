package domain

import (
	"sort"
	"strings"
)

// Company is a shipping-company code from a fixed enumeration.
type Company string

// List of recognized shipping companies
const (
	CompanyJet          Company = "JET"
	CompanyJadlog       Company = "JADLOG"
	CompanyMercadoLivre Company = "MERCADO_LIVRE"
)

var allowedCompanies = [...]Company{
	CompanyJet, CompanyJadlog, CompanyMercadoLivre,
}

// Valid checks if the Company is in the enumeration
func (c Company) Valid() bool {
	for _, v := range allowedCompanies {
		if c == v {
			return true
		}
	}
	return false
}

// NormalizeCompany uppercases and trims a raw company code.
func NormalizeCompany(raw string) Company {
	return Company(strings.ToUpper(strings.TrimSpace(raw)))
}

// NormalizeCompanies uppercases, deduplicates and sorts the raw codes.
// A single unrecognized code rejects the whole set; ok is false and the
// returned slice is nil in that case.
func NormalizeCompanies(raw []string) ([]Company, bool) {
	seen := make(map[Company]struct{}, len(raw))
	out := make([]Company, 0, len(raw))
	for _, r := range raw {
		c := NormalizeCompany(r)
		if !c.Valid() {
			return nil, false
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, true
}
