package catalogs

// Catalog is an ordered sequence of records. Order is preserved on append.
type Catalog []Record

// Len returns the number of records.
func (c Catalog) Len() int {
	return len(c)
}

// Filenames returns the identity keys of all records, in order.
func (c Catalog) Filenames() []string {
	names := make([]string, len(c))
	for i, rec := range c {
		names[i] = rec.Filename
	}
	return names
}

// IdentitySet returns the set of filenames present in the catalog.
func (c Catalog) IdentitySet() map[string]struct{} {
	set := make(map[string]struct{}, len(c))
	for _, rec := range c {
		set[rec.Filename] = struct{}{}
	}
	return set
}

// Contains reports whether a record with the given filename exists.
func (c Catalog) Contains(filename string) bool {
	for _, rec := range c {
		if rec.Filename == filename {
			return true
		}
	}
	return false
}
