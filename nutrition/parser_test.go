package nutrition

import "testing"

func TestParseStandardLabel(t *testing.T) {
	text := `Nutrition Facts
8 servings per container
Serving size 2/3 cup (55g)
Amount per serving
Calories 230
Total Fat 8g
Saturated Fat 1g
Total Carbohydrate 37g
Dietary Fiber 4g
Total Sugars 12g
Protein 3g`

	facts := ParseLabelText(text)

	if facts.TotalFat != 8 {
		t.Errorf("Expected total fat 8, got %v", facts.TotalFat)
	}
	if facts.TotalCarbohydrate != 37 {
		t.Errorf("Expected carbs 37, got %v", facts.TotalCarbohydrate)
	}
	if facts.DietaryFiber != 4 {
		t.Errorf("Expected fiber 4, got %v", facts.DietaryFiber)
	}
	if facts.TotalSugars != 12 {
		t.Errorf("Expected sugars 12, got %v", facts.TotalSugars)
	}
	if facts.Protein != 3 {
		t.Errorf("Expected protein 3, got %v", facts.Protein)
	}
	if facts.Servings != 8 {
		t.Errorf("Expected 8 servings, got %v", facts.Servings)
	}
}

func TestParseValueOnNextLine(t *testing.T) {
	text := `Protein
5g
Total Fat
2g`

	facts := ParseLabelText(text)
	if facts.Protein != 5 {
		t.Errorf("Expected protein 5, got %v", facts.Protein)
	}
	if facts.TotalFat != 2 {
		t.Errorf("Expected total fat 2, got %v", facts.TotalFat)
	}
}

func TestParsePercentagesAreIgnored(t *testing.T) {
	text := `Total Fat 8g 10%
Dietary Fiber 4g 14%`

	facts := ParseLabelText(text)
	if facts.TotalFat != 8 {
		t.Errorf("Expected total fat 8, got %v", facts.TotalFat)
	}
	if facts.DietaryFiber != 4 {
		t.Errorf("Expected fiber 4, got %v", facts.DietaryFiber)
	}
}

func TestParseLessThanOneGram(t *testing.T) {
	facts := ParseLabelText("Total Sugars <1g")
	if facts.TotalSugars != 0.5 {
		t.Errorf("Expected 0.5 for <1g, got %v", facts.TotalSugars)
	}
}

func TestParseOCRZeroMisread(t *testing.T) {
	// OCR returns "0g" as "og".
	facts := ParseLabelText("Total Fat og")
	if facts.TotalFat != 0 {
		t.Errorf("Expected 0 for 'og', got %v", facts.TotalFat)
	}
}

func TestParseExplicitZero(t *testing.T) {
	facts := ParseLabelText("Total Sugars 0g")
	if facts.TotalSugars != 0 {
		t.Errorf("Expected 0, got %v", facts.TotalSugars)
	}
}

func TestParseNotASignificantSource(t *testing.T) {
	facts := ParseLabelText("Not a significant source of dietary fiber")
	if facts.DietaryFiber != 0 {
		t.Errorf("Expected 0 for insignificant source, got %v", facts.DietaryFiber)
	}
}

func TestParseMissingNutrientsDefault(t *testing.T) {
	facts := ParseLabelText("Calories 230")
	if facts.Protein != 1 || facts.TotalFat != 1 || facts.Servings != 1 {
		t.Errorf("Expected defaults of 1.0, got %+v", facts)
	}
}

func TestParseTrailingNineMisread(t *testing.T) {
	// "3g" misread as "39": the trailing nine is a fused gram unit.
	facts := ParseLabelText("Protein 39")
	if facts.Protein != 3 {
		t.Errorf("Expected protein 3, got %v", facts.Protein)
	}
}

func TestParseTrailingZeroMisread(t *testing.T) {
	// "4g" misread as "40" on a nutrient that rarely reaches 40 per serving.
	facts := ParseLabelText("Dietary Fiber 40")
	if facts.DietaryFiber != 4 {
		t.Errorf("Expected fiber 4, got %v", facts.DietaryFiber)
	}
}

func TestParseTrailingZeroMisreadNotAppliedWithUnit(t *testing.T) {
	// A real unit after the value means no misread happened.
	facts := ParseLabelText("Total Carbohydrate 30g")
	if facts.TotalCarbohydrate != 30 {
		t.Errorf("Expected carbs 30, got %v", facts.TotalCarbohydrate)
	}
}

func TestParseSpanishLabel(t *testing.T) {
	text := `Información Nutricional
6 raciones por envase
Grasa Total 2g
Carbohidrato Total 20g
Fibra 3g
Azúcares Totales 9g
Proteínas 10g`

	facts := ParseLabelText(text)
	if facts.TotalFat != 2 {
		t.Errorf("Expected grasa 2, got %v", facts.TotalFat)
	}
	if facts.TotalCarbohydrate != 20 {
		t.Errorf("Expected carbohidrato 20, got %v", facts.TotalCarbohydrate)
	}
	if facts.DietaryFiber != 3 {
		t.Errorf("Expected fibra 3, got %v", facts.DietaryFiber)
	}
	if facts.TotalSugars != 9 {
		t.Errorf("Expected azúcares 9, got %v", facts.TotalSugars)
	}
	if facts.Protein != 10 {
		t.Errorf("Expected proteínas 10, got %v", facts.Protein)
	}
	if facts.Servings != 6 {
		t.Errorf("Expected 6 raciones, got %v", facts.Servings)
	}
}

func TestParseTotalSugarsPriorityOverAddedSugars(t *testing.T) {
	text := `Includes 10g Added Sugars
Total Sugars 12g`

	facts := ParseLabelText(text)
	if facts.TotalSugars != 12 {
		t.Errorf("Expected total sugars 12, got %v", facts.TotalSugars)
	}
}

func TestParseEmptyText(t *testing.T) {
	facts := ParseLabelText("")
	want := Facts{Protein: 1, TotalFat: 1, TotalCarbohydrate: 1, DietaryFiber: 1, TotalSugars: 1, Servings: 1}
	if facts != want {
		t.Errorf("Expected all defaults, got %+v", facts)
	}
}
