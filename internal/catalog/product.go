// Package catalog is the typed client for the product-facing API surface:
// products, styles, categories, brands, favorites, and recommendations.
package catalog

// ProductVariant is a size with its stock level.
type ProductVariant struct {
	Size          string `json:"size"`
	StockQuantity int    `json:"stock_quantity"`
}

// Product is the wire product record.
type Product struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Price             float64          `json:"price"`
	Images            []string         `json:"images"`
	BrandID           int              `json:"brand_id"`
	CategoryID        string           `json:"category_id"`
	Styles            []string         `json:"styles"`
	Variants          []ProductVariant `json:"variants"`
	Description       string           `json:"description,omitempty"`
	Color             string           `json:"color,omitempty"`
	Material          string           `json:"material,omitempty"`
	ArticleNumber     string           `json:"article_number,omitempty"`
	BrandName         string           `json:"brand_name,omitempty"`
	BrandReturnPolicy string           `json:"brand_return_policy,omitempty"`
	IsLiked           *bool            `json:"is_liked,omitempty"`
}

// ProductCreate is the request body for creating a product.
type ProductCreate struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         float64          `json:"price"`
	Images        []string         `json:"images"`
	BrandID       int              `json:"brand_id"`
	CategoryID    string           `json:"category_id"`
	Styles        []string         `json:"styles,omitempty"`
	Variants      []ProductVariant `json:"variants"`
	Color         string           `json:"color,omitempty"`
	Material      string           `json:"material,omitempty"`
	ArticleNumber string           `json:"article_number,omitempty"`
}

// ProductUpdate is the request body for partial product updates; nil fields
// are left unchanged by the server.
type ProductUpdate struct {
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Price       *float64          `json:"price,omitempty"`
	Images      *[]string         `json:"images,omitempty"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Styles      *[]string         `json:"styles,omitempty"`
	Variants    *[]ProductVariant `json:"variants,omitempty"`
	Color       *string           `json:"color,omitempty"`
	Material    *string           `json:"material,omitempty"`
}

// Style is a fashion style tag users pick during onboarding.
type Style struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Category is a product category (e.g. "dresses").
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Brand is the public brand summary shown to consumers.
type Brand struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
}
