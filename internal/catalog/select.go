package catalog

// BySlug returns the item with the given slug.
func BySlug(items []Item, slug string) (Item, bool) {
	for _, item := range items {
		if item.Slug == slug {
			return item, true
		}
	}
	return Item{}, false
}

// ByTier returns all items in the given tier, preserving catalog order.
func ByTier(items []Item, tier int) []Item {
	var selected []Item
	for _, item := range items {
		if item.Tier == tier {
			selected = append(selected, item)
		}
	}
	return selected
}
