package catalogs

import "sort"

// CollectionCount is a distinct collection name and how many records use it.
type CollectionCount struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
}

// CollectionName is one entry of a collection-names file.
type CollectionName struct {
	Collection  string `json:"collection"`
	DisplayName string `json:"displayName"`
}

// Collections returns the distinct non-empty collection values in the
// catalog, sorted by code point, with record counts.
func (c Catalog) Collections() []CollectionCount {
	counts := make(map[string]int)
	for _, rec := range c {
		if rec.Collection == "" {
			continue
		}
		counts[rec.Collection]++
	}

	result := make([]CollectionCount, 0, len(counts))
	for name, n := range counts {
		result = append(result, CollectionCount{Collection: name, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Collection < result[j].Collection
	})
	return result
}

// CollectionNames maps collection counts to collection-names entries. The
// display name starts out equal to the collection value.
func CollectionNames(counts []CollectionCount) []CollectionName {
	names := make([]CollectionName, len(counts))
	for i, cc := range counts {
		names[i] = CollectionName{Collection: cc.Collection, DisplayName: cc.Collection}
	}
	return names
}
