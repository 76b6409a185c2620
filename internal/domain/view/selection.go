package view

import "strings"

// Mode is the top-level dashboard page.
type Mode string

const (
	ModeOverview Mode = "overview"
	ModeInsights Mode = "insights"
)

// Insight is the active link on the insights page.
type Insight string

const (
	InsightNone     Insight = ""
	InsightCountry  Insight = "country"
	InsightCompany  Insight = "company"
	InsightSender   Insight = "sender"
	InsightReceiver Insight = "receiver"
)

// Insights lists the insight links in display order.
var Insights = []Insight{InsightCountry, InsightCompany, InsightSender, InsightReceiver}

// Selection is the user's current choice of mode, day, company and insight.
type Selection struct {
	Mode    Mode    `json:"mode"`
	Date    string  `json:"date,omitempty"`
	Company string  `json:"company,omitempty"`
	Insight Insight `json:"insight,omitempty"`
}

// Getter reads named parameters; url.Values satisfies it.
type Getter interface {
	Get(key string) string
}

// ParseSelection reads mode, date, company and insight from q. It never
// fails: unknown modes fall back to the overview and unknown insights to none.
func ParseSelection(q Getter) Selection {
	return Selection{
		Mode:    ParseMode(q.Get("mode")),
		Date:    strings.TrimSpace(q.Get("date")),
		Company: q.Get("company"),
		Insight: ParseInsight(q.Get("insight")),
	}
}

// ParseMode maps s to a Mode, defaulting to the overview.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeInsights):
		return ModeInsights
	default:
		return ModeOverview
	}
}

// ParseInsight maps s to an Insight. Link IDs such as "country-link" are accepted.
func ParseInsight(s string) Insight {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-link")
	for _, in := range Insights {
		if string(in) == s {
			return in
		}
	}
	return InsightNone
}
