package schema

// CatalogBookInstanceTable represents the 'catalog.bookinstance' table
type CatalogBookInstanceTable struct {
	Table     string
	ID        string
	BookID    string
	Imprint   string
	Status    string
	DueBack   string
	CreatedAt string
	UpdatedAt string
}

// CatalogBookInstance is the schema definition for catalog.bookinstance
var CatalogBookInstance = CatalogBookInstanceTable{
	Table:     "catalog.bookinstance",
	ID:        "id",
	BookID:    "bookid",
	Imprint:   "imprint",
	Status:    "status",
	DueBack:   "dueback",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogBookInstanceTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Imprint, t.Status, t.DueBack, t.CreatedAt, t.UpdatedAt}
}
