package enums

import (
	"fmt"
	"strings"
)

// MealType identifies which meal of the day a food entry belongs to.
type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
	MealTypeSnack     MealType = "Snack"
)

var validMealTypes = []MealType{
	MealTypeBreakfast,
	MealTypeLunch,
	MealTypeDinner,
	MealTypeSnack,
}

// String returns the literal string for the meal type.
func (m MealType) String() string {
	return string(m)
}

// IsValid reports whether the meal type is one of the four known values.
func (m MealType) IsValid() bool {
	for _, candidate := range validMealTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMealType converts raw input into a MealType, tolerating case drift.
func ParseMealType(value string) (MealType, error) {
	for _, candidate := range validMealTypes {
		if strings.EqualFold(string(candidate), strings.TrimSpace(value)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid meal type %q", value)
}
