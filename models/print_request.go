package models

// Category identifies a supported print product category.
type Category string

const (
	CategoryBusinessCard Category = "business-card"
	CategoryPoster       Category = "poster"
	CategoryBanner       Category = "banner"
	CategoryLargeBanner  Category = "large-banner"
	CategoryBrochure     Category = "brochure"
	CategorySticker      Category = "sticker"
)

// Categories lists every supported category.
var Categories = []Category{
	CategoryBusinessCard,
	CategoryPoster,
	CategoryBanner,
	CategoryLargeBanner,
	CategoryBrochure,
	CategorySticker,
}

// IsValid reports whether c is one of the supported categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryOptionKeys maps each category to the option fields a complete
// request for that category must carry, in the order they are collected
// during a chat flow.
var CategoryOptionKeys = map[Category][]string{
	CategoryBusinessCard: {"paper", "printing", "finishing"},
	CategoryPoster:       {"paper", "coating"},
	CategoryBanner:       {"size", "stand"},
	CategoryLargeBanner:  {"size", "processing"},
	CategoryBrochure:     {"paper", "size", "folding"},
	CategorySticker:      {"type", "size"},
}

// BudgetRange is an optional monetary range in the smallest currency unit.
type BudgetRange struct {
	Min int `bson:"min" json:"min"`
	Max int `bson:"max" json:"max"`
}

// PrintRequest is a fully specified scoring input.
type PrintRequest struct {
	Category Category          `bson:"category" json:"category" binding:"required"`
	Quantity int               `bson:"quantity" json:"quantity" binding:"required,gt=0"`
	Budget   *BudgetRange      `bson:"budget,omitempty" json:"budget,omitempty"`
	DueDays  *int              `bson:"dueDays,omitempty" json:"dueDays,omitempty"`
	Options  map[string]string `bson:"options,omitempty" json:"options,omitempty"`
}

// PartialPrintRequest accumulates request fields across chat turns.
// Every field may be absent until the conversation supplies it.
type PartialPrintRequest struct {
	Category *Category         `bson:"category,omitempty" json:"category,omitempty"`
	Quantity *int              `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Budget   *BudgetRange      `bson:"budget,omitempty" json:"budget,omitempty"`
	DueDays  *int              `bson:"dueDays,omitempty" json:"dueDays,omitempty"`
	Region   string            `bson:"region,omitempty" json:"region,omitempty"`
	Options  map[string]string `bson:"options,omitempty" json:"options,omitempty"`
}

// RequiredFields returns the field names a request of the given category
// must supply before it can be scored. Budget and region stay optional.
func RequiredFields(c Category) []string {
	fields := []string{"category", "quantity", "due_days"}
	fields = append(fields, CategoryOptionKeys[c]...)
	return fields
}

// MissingFields lists the required fields the partial request has not
// accumulated yet, in collection order. A request without a category can
// only report the category itself as missing.
func (p *PartialPrintRequest) MissingFields() []string {
	if p == nil || p.Category == nil {
		return []string{"category"}
	}
	var missing []string
	if p.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if p.DueDays == nil {
		missing = append(missing, "due_days")
	}
	for _, key := range CategoryOptionKeys[*p.Category] {
		if _, ok := p.Options[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// Complete reports whether the partial request carries every required field.
func (p *PartialPrintRequest) Complete() bool {
	return p != nil && p.Category != nil && len(p.MissingFields()) == 0
}

// ToPrintRequest materializes the accumulated fields into a scorable
// request. Callers must check Complete first.
func (p *PartialPrintRequest) ToPrintRequest() PrintRequest {
	req := PrintRequest{Budget: p.Budget, DueDays: p.DueDays}
	if p.Category != nil {
		req.Category = *p.Category
	}
	if p.Quantity != nil {
		req.Quantity = *p.Quantity
	}
	if len(p.Options) > 0 {
		req.Options = make(map[string]string, len(p.Options))
		for k, v := range p.Options {
			req.Options[k] = v
		}
	}
	return req
}
