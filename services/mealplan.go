package services

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Meal slots a booking may cater.
const (
	SlotLunch  = "Lunch"
	SlotSnack  = "Snack"
	SlotDinner = "Dinner"
)

var mealSlots = []string{SlotLunch, SlotSnack, SlotDinner}

// MealChoice is what the client submits per slot: a catalog plan name.
// Item lists are resolved server-side; anything the client sends for
// items is ignored.
type MealChoice struct {
	Plan string `json:"plan"`
}

// MealPlanInput maps slot name -> chosen plan.
type MealPlanInput map[string]MealChoice

// MealSelection is the stored, resolved form of one slot.
type MealSelection struct {
	Plan  string   `json:"plan"`
	Items []string `json:"items"`
}

// menuCatalog is the static plan catalog per slot. Selections are
// resolved against it at write time and stored as-is; later catalog
// edits do not rewrite existing bookings.
var menuCatalog = map[string]map[string][]string{
	SlotLunch: {
		"Standard Veg": {
			"Plain Rice", "Dal Fry (Lentil Soup)", "Aloo Gobi Tarkari",
			"Paneer Butter Masala", "Mixed Pickle", "Green Salad", "Papad", "Yogurt (Dahi)",
		},
		"Standard Non-Veg": {
			"Plain Rice", "Dal Fry", "Mixed Vegetable Tarkari",
			"Chicken Curry (Boneless)", "Mixed Pickle", "Green Salad", "Papad", "Yogurt (Dahi)",
		},
		"Deluxe Thali": {
			"Jeera Pulao", "Dal Makhani", "Seasonal Vegetable (Kurilo/Tama)", "Paneer Dish",
			"Mutton Curry (Goat)", "Raita", "Green Salad", "Papad / Assorted Pickles", "Gulab Jamun",
		},
	},
	SlotSnack: {
		"Light Snack": {
			"Tea / Coffee", "Samosa", "Vegetable Pakoda",
		},
		"Heavy Snack": {
			"Tea / Coffee / Soft Drinks", "Veg Momos (Steamed)", "Chicken Chili (Boneless)",
			"Aloo Sandeko", "Chatamari (Plain)",
		},
		"Full Platter": {
			"Tea / Coffee / Soft Drinks / Juice", "Buff Momos (Steamed & Kothey)",
			"Chicken Sekuwa (BBQ)", "Paneer Tikka", "Aloo Nimki", "Wai Wai Sandeko",
		},
	},
	SlotDinner: {
		"Standard Veg": {
			"Roti / Naan", "Plain Rice", "Dal Makhani", "Mixed Vegetable Korma",
			"Shahi Paneer", "Green Salad", "Pickle/Papad",
		},
		"Standard Non-Veg": {
			"Roti / Naan", "Jeera Rice", "Dal Makhani", "Fish Fry (Tawa-style)",
			"Chicken Butter Masala", "Green Salad", "Pickle/Papad", "Ras Malai (Dessert)",
		},
		"Deluxe Dinner Buffet": {
			"Assorted Breads (Naan, Roti)", "Hyderabadi Biryani (Chicken or Veg)", "Dal Makhani",
			"Mutton Korma", "Fish Tikka", "Paneer Lababdar", "Stir-fried Greens",
			"Russian Salad", "Dahi Vada", "Gajar ka Halwa & Ice Cream",
		},
	},
}

// ResolveMealPlan turns the submitted slot->plan selection into the
// stored JSON document. Slots left out, or marked "None", are dropped.
// An unknown slot or plan name is a validation failure. A selection
// with no catering at all resolves to nil (stored as NULL).
func ResolveMealPlan(in MealPlanInput) (datatypes.JSON, error) {
	if len(in) == 0 {
		return nil, nil
	}

	resolved := make(map[string]MealSelection, len(mealSlots))
	for slot, choice := range in {
		plans, ok := menuCatalog[slot]
		if !ok {
			return nil, validationf("unknown meal slot %q", slot)
		}
		if choice.Plan == "" || choice.Plan == "None" {
			continue
		}
		items, ok := plans[choice.Plan]
		if !ok {
			return nil, validationf("unknown %s plan %q", slot, choice.Plan)
		}
		resolved[slot] = MealSelection{Plan: choice.Plan, Items: append([]string(nil), items...)}
	}

	if len(resolved) == 0 {
		return nil, nil
	}

	raw, err := json.Marshal(resolved)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
