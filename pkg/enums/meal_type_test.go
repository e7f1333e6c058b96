package enums

import "testing"

func TestParseMealType(t *testing.T) {
	cases := map[string]MealType{
		"Breakfast": MealTypeBreakfast,
		"lunch":     MealTypeLunch,
		" DINNER ":  MealTypeDinner,
		"Snack":     MealTypeSnack,
	}
	for input, want := range cases {
		got, err := ParseMealType(input)
		if err != nil {
			t.Fatalf("ParseMealType(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseMealType(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseMealTypeRejectsUnknown(t *testing.T) {
	if _, err := ParseMealType("Brunch"); err == nil {
		t.Fatalf("expected error for unknown meal type")
	}
	if MealType("Brunch").IsValid() {
		t.Fatalf("Brunch must not be valid")
	}
}
