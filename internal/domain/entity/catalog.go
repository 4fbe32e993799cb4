package entity

// CatalogEntity is an immutable, fully normalized snapshot of a book record
// from the external catalog API. Every field is populated: strings default
// to "", slices to empty, and PageCount is nil only when the provider omits
// it. Downstream code never branches on missing fields.
type CatalogEntity struct {
	ExternalID    string   `json:"externalId"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	PageCount     *int     `json:"pageCount"`
	Categories    []string `json:"categories"`
	PreviewLink   string   `json:"previewLink"`
	Thumbnail     string   `json:"thumbnail"`
}
