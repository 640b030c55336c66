package services

import (
	"sort"

	"resinshop/internal/models"
)

// Selection maps an option-group id to the chosen option id. A valid
// purchase of a product with option groups needs exactly one entry per
// group.
type Selection map[string]string

// AutoSelect picks the first selectable option (active with inventory)
// in each group as the initial selection. Groups with no selectable
// option are left unselected, which blocks purchase until stock
// returns.
func AutoSelect(p *models.Product) Selection {
	sel := make(Selection)
	for _, group := range p.OptionGroups {
		for _, opt := range group.Options {
			if opt.Selectable() {
				sel[group.ID] = opt.ID
				break
			}
		}
	}
	return sel
}

// ComputeUnitPrice returns the price for one unit under the given
// selection. When the product has option groups and a selection exists,
// the price is the modifier of the first selected option in display
// order. Modifiers are not summed across groups; the first one wins.
// Without option groups the base price applies.
func ComputeUnitPrice(p *models.Product, sel Selection) float64 {
	if !p.HasOptionGroups() || len(sel) == 0 {
		return p.BasePrice
	}
	for _, group := range sortedGroups(p) {
		optID, ok := sel[group.ID]
		if !ok || optID == "" {
			continue
		}
		for _, opt := range group.Options {
			if opt.ID == optID {
				return opt.PriceModifier
			}
		}
	}
	return p.BasePrice
}

// ResolveVariantID maps a selection to the concrete sellable variant.
// Matching is lenient on purpose: backend data does not guarantee a
// variant per combination, and an unmatched selection falls back to the
// closest variant rather than blocking checkout. The cost is that the
// fallback can pair a selection with a variant whose price or SKU does
// not match it.
//
// An empty result means there is nothing purchasable yet (no variants,
// or the selection is incomplete).
func ResolveVariantID(p *models.Product, sel Selection) string {
	if len(p.Variants) == 0 {
		return ""
	}
	if !p.HasOptionGroups() {
		// Single variant: trivially it. Multiple variants without
		// groups is ambiguous backend data; first in list wins.
		return p.Variants[0].ID
	}

	selected := make([]string, 0, len(p.OptionGroups))
	for _, group := range p.OptionGroups {
		optID, ok := sel[group.ID]
		if !ok || optID == "" {
			return ""
		}
		selected = append(selected, optID)
	}
	sort.Strings(selected)

	hasCombos := false
	for _, v := range p.Variants {
		if len(v.OptionCombination) > 0 {
			hasCombos = true
			break
		}
	}

	if hasCombos {
		// Exact match first: the variant whose full option set equals
		// the selection.
		for _, v := range p.Variants {
			if sameOptionSet(v.OptionCombination, selected) {
				return v.ID
			}
		}
		// Then superset: a variant covering at least the selection.
		for _, v := range p.Variants {
			if coversOptionSet(v.OptionCombination, selected) {
				return v.ID
			}
		}
		return p.Variants[0].ID
	}

	// No combination metadata anywhere: match on price, else first.
	price := ComputeUnitPrice(p, sel)
	for _, v := range p.Variants {
		if v.Price == price {
			return v.ID
		}
	}
	return p.Variants[0].ID
}

// IsEligible reports whether every option group has a selection and
// each selected option is active with inventory. Products without
// option groups are always eligible.
func IsEligible(p *models.Product, sel Selection) bool {
	for _, group := range p.OptionGroups {
		optID, ok := sel[group.ID]
		if !ok || optID == "" {
			return false
		}
		found := false
		for _, opt := range group.Options {
			if opt.ID == optID {
				found = opt.Selectable()
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CanAddToCart reports whether the selection resolves to a variant and
// is eligible for purchase.
func CanAddToCart(p *models.Product, sel Selection) bool {
	return ResolveVariantID(p, sel) != "" && IsEligible(p, sel)
}

func sortedGroups(p *models.Product) []models.OptionGroup {
	groups := make([]models.OptionGroup, len(p.OptionGroups))
	copy(groups, p.OptionGroups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Position < groups[j].Position
	})
	return groups
}

func sameOptionSet(combination, selected []string) bool {
	if len(combination) != len(selected) {
		return false
	}
	combo := append([]string(nil), combination...)
	sort.Strings(combo)
	for i := range combo {
		if combo[i] != selected[i] {
			return false
		}
	}
	return true
}

func coversOptionSet(combination, selected []string) bool {
	if len(combination) < len(selected) {
		return false
	}
	set := make(map[string]struct{}, len(combination))
	for _, id := range combination {
		set[id] = struct{}{}
	}
	for _, id := range selected {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
