package activity

import "strings"

// Category classifies an activity for display coloring.
type Category string

const (
	CategoryBreakfast   Category = "breakfast"
	CategoryLunch       Category = "lunch"
	CategoryDinner      Category = "dinner"
	CategoryCoffee      Category = "coffee"
	CategorySightseeing Category = "sightseeing"
	CategoryShopping    Category = "shopping"
	CategoryRest        Category = "rest"
	CategoryTransit     Category = "transit"
	CategoryOther       Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryCoffee,
	CategorySightseeing,
	CategoryShopping,
	CategoryRest,
	CategoryTransit,
	CategoryOther,
}

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ColorName returns the display color bound to the category.
func (c Category) ColorName() string {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner:
		return "red"
	case CategoryCoffee:
		return "amber"
	case CategorySightseeing:
		return "blue"
	case CategoryShopping:
		return "purple"
	case CategoryRest:
		return "green"
	case CategoryTransit:
		return "orange"
	default:
		return "gray"
	}
}

// ParseCategory maps a string to a Category, falling back to the
// catch-all when unset or unrecognized.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// categoryKeywords maps title substrings to categories for records
// imported without an explicit category.
var categoryKeywords = []struct {
	keyword  string
	category Category
}{
	{"breakfast", CategoryBreakfast},
	{"brunch", CategoryBreakfast},
	{"lunch", CategoryLunch},
	{"dinner", CategoryDinner},
	{"coffee", CategoryCoffee},
	{"cafe", CategoryCoffee},
	{"visit", CategorySightseeing},
	{"explore", CategorySightseeing},
	{"tour", CategorySightseeing},
	{"museum", CategorySightseeing},
	{"shopping", CategoryShopping},
	{"market", CategoryShopping},
	{"rest", CategoryRest},
	{"relax", CategoryRest},
	{"check in", CategoryRest},
	{"transfer", CategoryTransit},
	{"train", CategoryTransit},
	{"flight", CategoryTransit},
	{"drive", CategoryTransit},
}

// CategoryFromTitle guesses a category from the activity title.
// Returns the catch-all when nothing matches.
func CategoryFromTitle(title string) Category {
	t := strings.ToLower(title)
	for _, k := range categoryKeywords {
		if strings.Contains(t, k.keyword) {
			return k.category
		}
	}
	return CategoryOther
}
