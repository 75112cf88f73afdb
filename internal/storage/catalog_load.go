package storage

import (
	"medreport/internal/catalog"
)

// LoadCatalog resolves the reference catalog for a run: an explicit seed
// file wins, then entries previously imported into the database, then the
// built-in set.
func LoadCatalog(db *DB, seedPath string) (*catalog.Catalog, error) {
	if seedPath != "" {
		entries, err := catalog.LoadFile(seedPath)
		if err != nil {
			return nil, err
		}
		return catalog.New(entries)
	}

	entries, err := db.ListCatalogEntries()
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return catalog.New(entries)
	}

	return catalog.Builtin(), nil
}
