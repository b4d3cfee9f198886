package service

import (
	"fmt"
	"strings"

	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
)

// mergeItems folds the concatenated source items left to right, summing
// quantities of items that share a merge key and appending the rest in
// source order. Discounts are intentionally dropped from merged items; tax
// fields and staff attribution carry over from the source item.
func mergeItems(sources []trxdomain.CartItems) (trxdomain.CartItems, int) {
	merged := trxdomain.CartItems{}
	index := map[string]int{}
	sourceCount := 0

	for _, items := range sources {
		for _, item := range items {
			sourceCount++
			key := mergeKey(item)
			if at, ok := index[key]; ok {
				merged[at].Quantity += item.Quantity
				continue
			}
			index[key] = len(merged)
			merged = append(merged, trxdomain.CartItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Price:     item.Price,
				TaxID:     item.TaxID,
				Taxable:   item.Taxable,
				TaxAmount: item.TaxAmount,
				Modifiers: item.Modifiers,
				StaffID:   item.StaffID,
			})
		}
	}
	return merged, sourceCount - len(merged)
}

func mergeKey(item trxdomain.CartItem) string {
	return fmt.Sprintf("%s|%s|%d|%s|%t|%s",
		item.ProductID,
		item.Name,
		item.Price,
		item.TaxID,
		item.Taxable,
		modifierKey(item.Modifiers),
	)
}

// modifierKey serializes the modifier list order-sensitively: the same
// modifiers applied in a different sequence do not merge. Normalizing here
// would change merge behavior for live orders, so any sort must be a
// deliberate decision.
func modifierKey(mods []trxdomain.AppliedModifier) string {
	if len(mods) == 0 {
		return ""
	}
	parts := make([]string, 0, len(mods))
	for _, m := range mods {
		parts = append(parts, fmt.Sprintf("%s:%s:%d", m.ModifierID, m.Name, m.Price))
	}
	return strings.Join(parts, ",")
}

func totalAmount(items trxdomain.CartItems) int64 {
	var total int64
	for _, item := range items {
		total += item.Price*int64(item.Quantity) + item.TaxAmount
	}
	return total
}
