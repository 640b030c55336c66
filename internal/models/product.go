package models

// Option is a single selectable value inside an option group.
type Option struct {
	ID            string  `json:"id"`
	Value         string  `json:"value" validate:"required,max=100"`
	PriceModifier float64 `json:"price_modifier" validate:"gte=0"`
	Inventory     int     `json:"inventory" validate:"gte=0"`
	IsActive      bool    `json:"is_active"`
}

// Selectable reports whether a buyer may choose this option.
func (o Option) Selectable() bool {
	return o.IsActive && o.Inventory > 0
}

// OptionGroup is a named set of options (e.g. "Size", "Color").
// Groups are independent: a valid purchase needs one option per group.
type OptionGroup struct {
	ID        string   `json:"id"`
	ProductID string   `json:"product_id"`
	Name      string   `json:"name" validate:"required,max=100"`
	Position  int      `json:"position" validate:"gte=0"`
	Options   []Option `json:"options"`
}

// Variant is a concrete sellable unit of a product. OptionCombination
// lists the option IDs this variant represents; the backend does not
// guarantee a variant for every combination, so it may be empty or
// cover only part of the option space.
type Variant struct {
	ID                string   `json:"id"`
	ProductID         string   `json:"product_id"`
	SKU               string   `json:"sku" validate:"required,max=64"`
	Price             float64  `json:"price" validate:"gte=0"`
	Inventory         int      `json:"inventory" validate:"gte=0"`
	IsActive          bool     `json:"is_active"`
	OptionCombination []string `json:"option_combination,omitempty"`
}

// Media is an image or video attached to a product.
type Media struct {
	ID       string `json:"id"`
	URL      string `json:"url" validate:"required,url"`
	Alt      string `json:"alt,omitempty"`
	Position int    `json:"position"`
}

// Category groups products for storefront navigation.
type Category struct {
	ID       string `json:"id" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Slug     string `json:"slug" validate:"required,max=120"`
	Position int    `json:"position" validate:"gte=0"`
}

// Product represents a catalog product as served by the backend API.
type Product struct {
	ID           string        `json:"id" validate:"omitempty,uuid"`
	Title        string        `json:"title" validate:"required,min=2,max=150"`
	Slug         string        `json:"slug" validate:"required,max=160"`
	Description  string        `json:"description,omitempty" validate:"omitempty,max=2000"`
	BasePrice    float64       `json:"base_price" validate:"gte=0"`
	CategoryID   string        `json:"category_id,omitempty"`
	IsActive     bool          `json:"is_active"`
	IsFeatured   bool          `json:"is_featured"`
	OptionGroups []OptionGroup `json:"option_groups,omitempty"`
	Variants     []Variant     `json:"variants,omitempty"`
	Media        []Media       `json:"media,omitempty"`
}

// HasOptionGroups reports whether a purchase requires option selections.
func (p *Product) HasOptionGroups() bool {
	return len(p.OptionGroups) > 0
}
