package model

import "strings"

// Dietary restriction tags accepted by the API.
const (
    DietVegan            = "vegan"
    DietVegetarian       = "vegetarian"
    DietGlutenFree       = "gluten_free"
    DietDairyFree        = "dairy_free"
    DietNutAllergy       = "nut_allergy"
    DietPeanutAllergy    = "peanut_allergy"
    DietShellfishAllergy = "shellfish_allergy"
    DietFishAllergy      = "fish_allergy"
    DietEggFree          = "egg_free"
    DietSoyFree          = "soy_free"
    DietHalal            = "halal"
    DietKosher           = "kosher"
    DietSesameAllergy    = "sesame_allergy"
)

var dietaryLabels = map[string]string{
    DietVegan:            "Vegan",
    DietVegetarian:       "Vegetarian",
    DietGlutenFree:       "GF",
    DietDairyFree:        "DF",
    DietNutAllergy:       "No Nuts",
    DietPeanutAllergy:    "No Peanuts",
    DietShellfishAllergy: "No Shellfish",
    DietFishAllergy:      "No Fish",
    DietEggFree:          "Egg Free",
    DietSoyFree:          "Soy Free",
    DietHalal:            "Halal",
    DietKosher:           "Kosher",
    DietSesameAllergy:    "No Sesame",
}

// ValidDietary reports whether tag belongs to the closed set.
func ValidDietary(tag string) bool {
    _, ok := dietaryLabels[tag]
    return ok
}

// DietaryLabel returns the short display label for a tag. Unknown tags are
// shown with underscores replaced by spaces.
func DietaryLabel(tag string) string {
    if l, ok := dietaryLabels[tag]; ok {
        return l
    }
    return strings.ReplaceAll(tag, "_", " ")
}
