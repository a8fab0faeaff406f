package planner

import (
	"errors"
	"regexp"
	"strings"
)

const summaryLimit = 120

var h2Re = regexp.MustCompile(`(?m)^##\s+(.+)$`)

// PostProcess trims the raw completion and derives the display metadata.
func PostProcess(raw, model string) (Itinerary, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return Itinerary{}, errors.New("model returned empty markdown")
	}

	summary := extractSummary(md)
	if summary == "" {
		summary = clip(md, summaryLimit)
	}

	return Itinerary{
		Markdown:  md,
		Summary:   summary,
		Outline:   extractOutline(md),
		ModelUsed: model,
	}, nil
}

// extractOutline lists the H2 section titles in source order.
func extractOutline(md string) []string {
	var out []string
	for _, m := range h2Re.FindAllStringSubmatch(md, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// The summary is the first body line (no headings, no bullets).
func extractSummary(md string) string {
	for _, line := range strings.Split(md, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		if strings.HasPrefix(t, "-") || strings.HasPrefix(t, "*") || strings.HasPrefix(t, "•") {
			continue
		}
		return clip(t, summaryLimit)
	}
	return ""
}

func clip(s string, limit int) string {
	compact := strings.Join(strings.Fields(s), " ")
	r := []rune(compact)
	if len(r) <= limit {
		return compact
	}
	return string(r[:limit])
}
