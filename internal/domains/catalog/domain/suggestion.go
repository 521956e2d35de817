package domain

import (
	"sort"
	"strings"
)

// SuggestionType classifies a search suggestion.
type SuggestionType string

const (
	SuggestProduct  SuggestionType = "product"
	SuggestCategory SuggestionType = "category"
	SuggestMarket   SuggestionType = "market"
)

// SearchSuggestion is an autocomplete entry with the number of matching products.
type SearchSuggestion struct {
	Type  SuggestionType
	Text  string
	Count int
}

// BuildSuggestions collects product names, categories, and markets containing term.
func BuildSuggestions(term string, products []*Product, markets []*Market, limit int) []SearchSuggestion {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	categories := map[string]int{}
	perMarket := map[string]int{}
	var result []SearchSuggestion
	for _, p := range products {
		if containsFold(p.Name, term) {
			result = append(result, SearchSuggestion{Type: SuggestProduct, Text: p.Name, Count: 1})
		}
		if containsFold(p.Category, term) {
			categories[p.Category]++
		}
		perMarket[p.MarketID]++
	}
	for name, count := range categories {
		result = append(result, SearchSuggestion{Type: SuggestCategory, Text: name, Count: count})
	}
	for _, m := range markets {
		if containsFold(m.Name, term) {
			result = append(result, SearchSuggestion{Type: SuggestMarket, Text: m.Name, Count: perMarket[m.ID]})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		ap, bp := hasPrefixFold(a.Text, term), hasPrefixFold(b.Text, term)
		if ap != bp {
			return ap
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Text < b.Text
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}
