package dto

// CatalogRequest creates or renames a category or tag.
type CatalogRequest struct {
	Title string `json:"title"`
}
