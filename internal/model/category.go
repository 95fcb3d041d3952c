package model

// Category groups recipes for browsing. It is matched against Recipe.Category
// by exact label and never enforced on write.
type Category struct {
	Name     string `json:"name" yaml:"name"`
	ImageURL string `json:"image_url" yaml:"image_url"`
	Order    int    `json:"order" yaml:"order"`
}

// DefaultCategories is the known category set, in display order.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Entrées", ImageURL: "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=400", Order: 1},
		{Name: "Plats principaux", ImageURL: "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400", Order: 2},
		{Name: "Desserts", ImageURL: "https://images.unsplash.com/photo-1551024506-0bccd828d307?w=400", Order: 3},
		{Name: "Boissons", ImageURL: "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=400", Order: 4},
	}
}
