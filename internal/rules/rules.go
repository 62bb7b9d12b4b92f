package rules

import "wraps/internal/model"

// Rule maps a set of keywords to a category. Higher priority wins when
// multiple rules match; equal priorities resolve to the first-declared rule.
type Rule struct {
	Category model.Category
	Keywords []string
	Priority int
}

// DefaultRules returns the built-in keyword ruleset. Declaration order is
// part of the contract: it is the tie-break for equal priorities.
func DefaultRules() []Rule {
	return []Rule{
		// High-priority specific product phrases
		{Category: model.CategoryElectronics, Keywords: []string{"iphone", "samsung galaxy", "macbook", "ipad", "airpods", "nintendo switch", "playstation", "xbox"}, Priority: 10},
		{Category: model.CategoryFoodBev, Keywords: []string{"coca cola", "pepsi", "starbucks", "dunkin", "pizza", "burger", "sandwich"}, Priority: 10},

		// Brand rules
		{Category: model.CategoryElectronics, Keywords: []string{"apple", "samsung", "sony", "lg", "dell", "hp", "microsoft", "google", "amazon echo", "alexa"}, Priority: 8},
		{Category: model.CategoryHealthBeauty, Keywords: []string{"loreal", "maybelline", "revlon", "neutrogena", "olay", "dove", "pantene"}, Priority: 8},
		{Category: model.CategoryBabyKids, Keywords: []string{"pampers", "huggies", "gerber", "fisher price", "lego", "barbie", "hot wheels"}, Priority: 8},

		// Generic category keywords
		{Category: model.CategoryElectronics, Keywords: []string{"smart", "phone", "laptop", "computer", "headphones", "speaker", "camera", "tablet", "tv", "monitor", "charger", "cable", "bluetooth", "wireless", "gaming", "gpu", "cpu", "memory card", "usb", "hdmi"}, Priority: 5},
		{Category: model.CategoryFoodBev, Keywords: []string{"organic", "milk", "bread", "cheese", "meat", "chicken", "beef", "pork", "fish", "salmon", "vegetables", "fruits", "apple", "banana", "orange", "coffee", "tea", "juice", "water", "soda", "beer", "wine", "snack", "chips", "cookie", "candy", "chocolate"}, Priority: 5},
		{Category: model.CategoryHealthBeauty, Keywords: []string{"vitamins", "supplement", "skincare", "lotion", "shampoo", "conditioner", "toothpaste", "deodorant", "perfume", "makeup", "lipstick", "mascara", "foundation", "sunscreen", "moisturizer", "serum", "face wash", "body wash"}, Priority: 5},
		{Category: model.CategoryHousehold, Keywords: []string{"detergent", "soap", "toilet paper", "paper towel", "cleaning", "vacuum", "trash bag", "dish soap", "laundry", "fabric softener", "air freshener", "candle"}, Priority: 5},
		{Category: model.CategoryClothing, Keywords: []string{"shirt", "pants", "dress", "shoes", "boots", "sneakers", "jacket", "coat", "sweater", "jeans", "shorts", "underwear", "socks", "hat", "gloves", "scarf"}, Priority: 5},
		{Category: model.CategoryHomeGarden, Keywords: []string{"furniture", "pillow", "blanket", "curtain", "lamp", "mirror", "plant", "garden", "tool", "hardware", "paint", "light bulb"}, Priority: 5},
		{Category: model.CategorySports, Keywords: []string{"fitness", "exercise", "yoga", "bike", "bicycle", "camping", "hiking", "fishing", "golf", "tennis", "basketball", "football", "soccer"}, Priority: 5},
		{Category: model.CategoryBooksMedia, Keywords: []string{"book", "novel", "magazine", "dvd", "blu-ray", "cd", "vinyl", "record"}, Priority: 5},
		{Category: model.CategoryBabyKids, Keywords: []string{"baby", "infant", "toddler", "diaper", "formula", "toy", "puzzle", "game", "stroller", "car seat"}, Priority: 5},
		{Category: model.CategoryPetSupplies, Keywords: []string{"dog", "cat", "pet", "food", "treat", "toy", "leash", "collar", "bed", "litter"}, Priority: 5},

		// Low-signal unit-of-measure words
		{Category: model.CategoryFoodBev, Keywords: []string{"oz", "lb", "pack", "count", "bottle", "can"}, Priority: 1},
	}
}
