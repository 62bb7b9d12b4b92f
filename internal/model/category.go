package model

// Category is a spending category drawn from a closed set.
type Category string

// The closed category set. CategoryOther is the sentinel meaning
// "unclassified by rules, not yet AI-resolved, or AI-resolution failed".
const (
	CategoryElectronics  Category = "Electronics"
	CategoryFoodBev      Category = "Food & Beverages"
	CategoryHealthBeauty Category = "Health & Beauty"
	CategoryHousehold    Category = "Household"
	CategoryClothing     Category = "Clothing"
	CategoryHomeGarden   Category = "Home & Garden"
	CategorySports       Category = "Sports & Outdoors"
	CategoryBooksMedia   Category = "Books & Media"
	CategoryBabyKids     Category = "Baby & Kids"
	CategoryPetSupplies  Category = "Pet Supplies"
	CategoryAutomotive   Category = "Automotive"
	CategoryOffice       Category = "Office Supplies"
	CategoryJewelry      Category = "Jewelry & Accessories"
	CategoryOther        Category = "Other"
)

var allCategories = []Category{
	CategoryElectronics,
	CategoryFoodBev,
	CategoryHealthBeauty,
	CategoryHousehold,
	CategoryClothing,
	CategoryHomeGarden,
	CategorySports,
	CategoryBooksMedia,
	CategoryBabyKids,
	CategoryPetSupplies,
	CategoryAutomotive,
	CategoryOffice,
	CategoryJewelry,
	CategoryOther,
}

// AllCategories returns the closed category set in declaration order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ValidCategory reports whether s is a member of the closed category set.
func ValidCategory(s string) bool {
	for _, c := range allCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}
