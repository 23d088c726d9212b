package feed

// Deduper filters candidate items against the existing corpus by
// canonical URL. Items with different URLs are always distinct, even
// when they carry the same story.
type Deduper struct{}

func NewDeduper() *Deduper {
	return &Deduper{}
}

// Run returns the candidates whose URL is not present in existing,
// preserving candidate order. Accepted URLs join the seen set
// immediately, so a batch is also deduplicated against itself.
func (d *Deduper) Run(existing []Item, candidates []Item) []Item {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, item := range existing {
		seen[item.URL] = struct{}{}
	}

	added := make([]Item, 0, len(candidates))
	for _, item := range candidates {
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		added = append(added, item)
	}
	return added
}
