package planner

import (
	"context"
	"strings"
)

// MockLLM is an offline stand-in for local runs and tests. It answers every
// model with the same small itinerary, echoing the trip details so the flow
// feels live without calling an external model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, _ string, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("## Trip Overview\n\n")
	sb.WriteString("A compact sample plan produced without calling a model.\n\n")
	for _, line := range detailLines(prompt.User) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n## Daily Itinerary\n\n")
	sb.WriteString("Day 1\n")
	sb.WriteString("- Morning walk through the old town\n")
	sb.WriteString("- Lunch at the central market\n")
	sb.WriteString("* Afternoon museum visit\n\n")
	sb.WriteString("## Dining & Cuisine Recommendations\n\n")
	sb.WriteString("• Try the local breakfast spot near the station\n\n")
	sb.WriteString("## Logistics & Transport Tips\n\n")
	sb.WriteString("Buy a day pass for public transport.\n\n")
	sb.WriteString("## Important Local Info (Safety/Weather)\n\n")
	sb.WriteString("Check the forecast the night before; evenings can be cool.\n")
	return sb.String(), nil
}

// detailLines pulls the leading "- " lines of the trip brief (destination,
// duration, interests).
func detailLines(user string) []string {
	var out []string
	for _, line := range strings.Split(user, "\n") {
		if strings.HasPrefix(line, "- ") {
			out = append(out, line)
			continue
		}
		if len(out) > 0 {
			break
		}
	}
	return out
}
