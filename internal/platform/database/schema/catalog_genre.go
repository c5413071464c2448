package schema

// CatalogGenreTable represents the 'catalog.genre' table
type CatalogGenreTable struct {
	Table     string
	ID        string
	Name      string
	NameKey   string // folded name, indexed but not unique
	CreatedAt string
	UpdatedAt string
}

// CatalogGenre is the schema definition for catalog.genre
var CatalogGenre = CatalogGenreTable{
	Table:     "catalog.genre",
	ID:        "id",
	Name:      "name",
	NameKey:   "namekey",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogGenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt, t.UpdatedAt}
}
