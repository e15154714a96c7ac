package models

import (
	"time"
)

// DiscountTier grants a rate reduction once the ordered quantity reaches
// MinQuantity. Rate is a fraction of the unit price, e.g. 0.10 for 10% off.
type DiscountTier struct {
	MinQuantity int     `bson:"minQuantity" json:"minQuantity" validate:"gt=0"`
	Rate        float64 `bson:"rate" json:"rate" validate:"gte=0,lte=1"`
}

// PriceEntry is a vendor's quote for one category.
type PriceEntry struct {
	UnitPrice     float64            `bson:"unitPrice" json:"unitPrice" validate:"gte=0"`
	OptionUplifts map[string]float64 `bson:"optionUplifts,omitempty" json:"optionUplifts,omitempty"`
	DiscountTiers []DiscountTier     `bson:"discountTiers,omitempty" json:"discountTiers,omitempty"`
}

// CapacityEntry describes a vendor's throughput for one category.
type CapacityEntry struct {
	DailyThroughput    int `bson:"dailyThroughput" json:"dailyThroughput" validate:"gt=0"`
	BaseTurnaroundDays int `bson:"baseTurnaroundDays" json:"baseTurnaroundDays" validate:"gt=0"`
}

// VendorContact carries the vendor's public contact details.
type VendorContact struct {
	Phone   string `bson:"phone" json:"phone,omitempty"`
	Email   string `bson:"email" json:"email,omitempty" validate:"omitempty,email"`
	Address string `bson:"address" json:"address,omitempty"`
	Region  string `bson:"region" json:"region,omitempty"`
}

// VendorRecord is the catalog's single source of truth for one print vendor.
type VendorRecord struct {
	ID             string                     `bson:"id" json:"id"`
	Name           string                     `bson:"name" json:"name" validate:"required"`
	Contact        VendorContact              `bson:"contact" json:"contact"`
	PriceTable     map[Category]PriceEntry    `bson:"priceTable" json:"priceTable" validate:"required,dive"`
	Capacity       map[Category]CapacityEntry `bson:"capacity" json:"capacity" validate:"dive"`
	CompletedJobs  map[Category]int           `bson:"completedJobs,omitempty" json:"completedJobs,omitempty"`
	OnTimeRate     float64                    `bson:"onTimeRate" json:"onTimeRate" validate:"gte=0,lte=1"`
	Certifications []string                   `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Rating         float64                    `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	CreatedAt      time.Time                  `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt      time.Time                  `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// SupportsCategory reports whether the vendor quotes prices for the category.
func (v *VendorRecord) SupportsCategory(c Category) bool {
	_, ok := v.PriceTable[c]
	return ok
}

// QuotedUnitPrice returns the unit price for the request's exact
// (category, options) combination, including option uplifts. The second
// return value is false when the vendor does not serve the category.
func (v *VendorRecord) QuotedUnitPrice(req PrintRequest) (float64, bool) {
	entry, ok := v.PriceTable[req.Category]
	if !ok {
		return 0, false
	}
	price := entry.UnitPrice
	for _, chosen := range req.Options {
		if uplift, ok := entry.OptionUplifts[chosen]; ok {
			price += uplift
		}
	}
	return price, true
}

// DiscountRateAt returns the best discount rate whose tier is reached by
// the given quantity, or 0 when no tier matches.
func (v *VendorRecord) DiscountRateAt(c Category, quantity int) float64 {
	entry, ok := v.PriceTable[c]
	if !ok {
		return 0
	}
	best := 0.0
	for _, tier := range entry.DiscountTiers {
		if quantity >= tier.MinQuantity && tier.Rate > best {
			best = tier.Rate
		}
	}
	return best
}

// EstimatedTurnaroundDays estimates production time for the category at the
// given quantity: the base turnaround plus one day per full day of extra
// throughput the order consumes.
func (v *VendorRecord) EstimatedTurnaroundDays(c Category, quantity int) (int, bool) {
	capEntry, ok := v.Capacity[c]
	if !ok || capEntry.DailyThroughput <= 0 {
		return 0, false
	}
	extra := 0
	if quantity > capEntry.DailyThroughput {
		extra = (quantity - 1) / capEntry.DailyThroughput
	}
	return capEntry.BaseTurnaroundDays + extra, true
}
