package session

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"yashubustudio/symptomcheck/diagnosis"
	"yashubustudio/symptomcheck/internal/render"
)

// DisplayName title-cases a disease name for the result table. Underscore
// separated parts are capitalized individually: "food_poisoning" -> "Food_Poisoning".
func DisplayName(disease string) string {
	caser := cases.Title(language.English)
	parts := strings.Split(disease, "_")
	for i, p := range parts {
		parts[i] = caser.String(p)
	}
	return strings.Join(parts, "_")
}

// FormatResult renders one result line: padded disease name, match count and specialist.
func FormatResult(p *render.Painter, r diagnosis.Result) string {
	name := fmt.Sprintf("%-20s", DisplayName(r.Disease))
	return fmt.Sprintf("%s (%d match)  →  %s", p.Paint(name, render.Green), r.MatchCount, r.Specialist)
}
