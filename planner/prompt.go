package planner

import (
	"fmt"
	"strings"
)

// Prompt is the two-message context sent to the chat completion API.
type Prompt struct {
	System string
	User   string
}

// systemPrompt fixes the persona and the required H2 section layout of the
// generated markdown.
const systemPrompt = `You are an expert TRAVEL PLANNER and CONCIERGE.
Requirements:
- Produce a detailed, day-by-day itinerary.
- Include specific recommendations for food, historic sites, and activities based on user interests.
- Strictly adhere to the user's guardrails (e.g., if 'no walking', suggest transport or stationary activities).
- Provide a balanced mix of popular landmarks and hidden gems.
Output format in Markdown with these top-level H2 sections (##):
  ## Trip Overview
  ## Daily Itinerary
  ## Dining & Cuisine Recommendations
  ## Logistics & Transport Tips
  ## Important Local Info (Safety/Weather)`

// noGuardrails is the fallback shown in the constraints block when the user
// left the guardrails field blank.
const noGuardrails = "None specified"

// BuildPrompt interpolates the request fields into the trip brief verbatim.
// No validation or normalization happens here; callers gate on required
// fields before asking for a completion.
//
// The guardrails value appears twice on purpose: the constraints block
// substitutes "None specified" when it is blank, while the instruction line
// always carries the raw value.
func BuildPrompt(req TripRequest) Prompt {
	guardrails := req.Guardrails
	if strings.TrimSpace(guardrails) == "" {
		guardrails = noGuardrails
	}

	var sb strings.Builder
	sb.WriteString("TRIP DETAILS\n")
	sb.WriteString(fmt.Sprintf("- Destination: %s\n", req.Destination))
	sb.WriteString(fmt.Sprintf("- Duration: %s days\n", req.DayCount))
	sb.WriteString(fmt.Sprintf("- Special Interests: %s\n", req.Interests))
	sb.WriteString("\n")
	sb.WriteString("CONSTRAINTS & GUARDRAILS\n")
	sb.WriteString(fmt.Sprintf("- %s\n", guardrails))
	sb.WriteString("\n")
	sb.WriteString("INSTRUCTIONS\n")
	sb.WriteString(fmt.Sprintf("- Create a plan for exactly %s days.\n", req.DayCount))
	sb.WriteString(fmt.Sprintf("- Ensure every activity aligns with the interests: %s.\n", req.Interests))
	sb.WriteString(fmt.Sprintf("- Ensure every activity respects the guardrails: %s.\n", req.Guardrails))
	sb.WriteString("- Keep the tone helpful and exciting.")

	return Prompt{
		System: systemPrompt,
		User:   sb.String(),
	}
}
