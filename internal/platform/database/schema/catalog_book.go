package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table     string
	ID        string
	Title     string
	Summary   string
	ISBN      string
	AuthorID  string
	CreatedAt string
	UpdatedAt string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:     "catalog.book",
	ID:        "id",
	Title:     "title",
	Summary:   "summary",
	ISBN:      "isbn",
	AuthorID:  "authorid",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{t.ID, t.Title, t.Summary, t.ISBN, t.AuthorID, t.CreatedAt, t.UpdatedAt}
}

// CatalogBookGenreTable represents the 'catalog.bookgenre' junction table
type CatalogBookGenreTable struct {
	Table   string
	BookID  string
	GenreID string
}

// CatalogBookGenre is the schema definition for catalog.bookgenre
var CatalogBookGenre = CatalogBookGenreTable{
	Table:   "catalog.bookgenre",
	BookID:  "bookid",
	GenreID: "genreid",
}
