package domain

import "strings"

// Estimate is one reference probability with its match predicate. The
// knowledge base is an ordered list; the first estimate whose predicate
// accepts a title wins, so ordering is part of the contract.
type Estimate struct {
	ID         string   `json:"id" yaml:"id"`
	Prob       float64  `json:"prob" yaml:"prob"` // 0–100
	Source     string   `json:"source" yaml:"source"`
	RequireAll []string `json:"require_all" yaml:"require_all"`
	RequireAny []string `json:"require_any" yaml:"require_any"`
	Exclude    []string `json:"exclude" yaml:"exclude"`
}

// Matches evalúa el predicado contra el título en crudo (lowercase):
// todas las require_all presentes, alguna require_any si la lista no está
// vacía, y ninguna exclude.
func (e Estimate) Matches(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range e.RequireAll {
		if !strings.Contains(t, kw) {
			return false
		}
	}
	if len(e.RequireAny) > 0 {
		found := false
		for _, kw := range e.RequireAny {
			if strings.Contains(t, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, kw := range e.Exclude {
		if strings.Contains(t, kw) {
			return false
		}
	}
	return true
}
