package enums

import "fmt"

// ProductCategory is the storefront's fixed category set.
type ProductCategory string

const (
	ProductCategoryCrystals    ProductCategory = "Crystals"
	ProductCategoryRudraksh    ProductCategory = "Rudraksh"
	ProductCategoryCandles     ProductCategory = "Candles"
	ProductCategoryOilsSprays  ProductCategory = "Oil & sprays"
	ProductCategoryOtherItems  ProductCategory = "Other items"
)

var validProductCategories = []ProductCategory{
	ProductCategoryCrystals,
	ProductCategoryRudraksh,
	ProductCategoryCandles,
	ProductCategoryOilsSprays,
	ProductCategoryOtherItems,
}

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
