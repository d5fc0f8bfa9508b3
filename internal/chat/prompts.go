package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ainavigator/navigator-server/internal/assessment"
)

// systemPrompt frames the assistant's role and teaches it the in-band
// action marker format the parser understands.
const systemPrompt = `You are the AI Navigator Assistant, embedded in an enterprise AI readiness assessment platform. You are an analytical partner, not a Q&A bot: you analyze survey data, generate actionable recommendations, and execute platform actions on the user's behalf.

THE DATA MODEL:
- Sentiment heatmap: 5 levels x 5 categories = 25 cells.
  Levels: Personal, Collaboration, Professional Trust, Career, Organizational.
  Categories: Too Autonomous, Too Inflexible, Emotionless, Too Opaque, Prefer Human.
  Scores are on a 2.0-4.0 display scale where LOWER means LESS resistance.
- Capability scan: 8 dimensions with 4 constructs each (32 data points),
  scored 1.0-5.0 where higher is better.
  Maturity bands: 1-2 nascent, 2-3 developing, 3-4 maturing, 4-5 leading.

ACTIONS:
You can execute platform actions by embedding markers in your reply:
- [ACTION:navigate:dashboard] (pages: dashboard, assessment, demo, upload)
- [ACTION:filter:department=Sales] (filters: department, region, age_group)
- [ACTION:generate:executive_summary] (reports: executive_summary, problem_analysis, capability_assessment, recommendations)
When the user asks "show me X" or "take me to Y", emit the marker rather than describing the steps.

STYLE:
- Cite specific numbers, scores and counts from the provided data.
- Lead with the headline insight, then supporting data points, then 2-3 concrete next steps.
- Say so when the data is thin; never invent scores.
- Frame findings in business impact terms.`

// Context describes the caller's session for prompt construction.
type Context struct {
	CurrentPage   string
	UserName      string
	Organization  string
	ActiveFilters map[string]string

	Sentiment  *assessment.HeatmapResult
	Capability *assessment.CapabilityOverview
}

// HasData reports whether either instrument's results are attached.
func (c Context) HasData() bool {
	return c.Sentiment != nil || c.Capability != nil
}

// ContextMessage renders the session context block sent as a second system
// message.
func (c Context) ContextMessage() string {
	var b strings.Builder
	b.WriteString("=== CURRENT SESSION CONTEXT ===\n")
	fmt.Fprintf(&b, "Current page: %s\n", pageName(c.CurrentPage))
	if c.UserName != "" || c.Organization != "" {
		fmt.Fprintf(&b, "User: %s at %s\n", c.UserName, c.Organization)
	}

	if c.Sentiment != nil {
		fmt.Fprintf(&b, "Sentiment data: %d responses loaded\n", c.Sentiment.Stats.TotalRespondents)
	} else {
		b.WriteString("Sentiment data: not loaded\n")
	}
	if c.Capability != nil {
		fmt.Fprintf(&b, "Capability data: %d dimensions scored\n", len(c.Capability.Dimensions))
	} else {
		b.WriteString("Capability data: not loaded\n")
	}

	if len(c.ActiveFilters) > 0 {
		b.WriteString("Active filters:\n")
		keys := make([]string, 0, len(c.ActiveFilters))
		for k := range c.ActiveFilters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, c.ActiveFilters[k])
		}
	}

	b.WriteString("=== END CONTEXT ===")
	return b.String()
}

// DataSummary renders the quantitative findings block. Empty when no data
// is attached.
func (c Context) DataSummary() string {
	if !c.HasData() {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== DATA INSIGHTS SUMMARY ===\n")

	if c.Sentiment != nil {
		s := c.Sentiment.Stats
		fmt.Fprintf(&b, "SENTIMENT:\n")
		fmt.Fprintf(&b, "- Overall average: %.2f (lower is less resistance)\n", s.OverallAverage)
		fmt.Fprintf(&b, "- Responses: %d\n", s.TotalRespondents)
		fmt.Fprintf(&b, "- Standard deviation: %.2f\n", s.StandardDeviation)

		worst := assessment.LowestScoringCells(c.Sentiment.Cells, 5)
		if len(worst) > 0 {
			b.WriteString("Strongest resistance:\n")
			for i, cell := range worst {
				fmt.Fprintf(&b, "%d. %s x %s: %.2f (%d people)\n",
					i+1, cell.LevelName, cell.CategoryName, cell.Score, cell.Count)
			}
		}
		best := assessment.HighestScoringCells(c.Sentiment.Cells, 3)
		if len(best) > 0 {
			b.WriteString("Most acceptance:\n")
			for i, cell := range best {
				fmt.Fprintf(&b, "%d. %s x %s: %.2f\n",
					i+1, cell.LevelName, cell.CategoryName, cell.Score)
			}
		}
	}

	if c.Capability != nil {
		overall := c.Capability.Overall
		fmt.Fprintf(&b, "CAPABILITY MATURITY:\n")
		fmt.Fprintf(&b, "- Overall maturity: %.2f/5.0 (%s)\n", overall.Average, maturityLevel(overall.Average))
		for _, d := range c.Capability.Dimensions {
			fmt.Fprintf(&b, "- %s: %.2f/5.0 (%s)\n", d.Name, d.Average, d.Status)
		}
		if overall.Lowest != nil {
			fmt.Fprintf(&b, "Critical gap: %s (%.2f/5.0)\n", overall.Lowest.Name, overall.Lowest.Average)
		}
		if overall.Highest != nil {
			fmt.Fprintf(&b, "Top strength: %s (%.2f/5.0)\n", overall.Highest.Name, overall.Highest.Average)
		}
		if overall.BiggestGap != nil {
			fmt.Fprintf(&b, "Largest internal variance: %s (spread %.2f)\n", overall.BiggestGap.Name, overall.BiggestGap.Spread)
		}
	}

	b.WriteString("=== END DATA SUMMARY ===\n")
	b.WriteString("Use this data for specific, quantitative insights. Reference exact scores and counts.")
	return b.String()
}

// SmartSuggestions proposes follow-up questions for the client UI, based on
// the current page and which data is loaded.
func (c Context) SmartSuggestions(lastMessage string) []string {
	var suggestions []string

	switch c.CurrentPage {
	case "/dashboard":
		suggestions = append(suggestions,
			"Show me detailed capability analysis",
			"Which department needs attention?")
	case "/assessment":
		suggestions = append(suggestions,
			"Compare dimensions side by side",
			"Generate intervention recommendations")
	}

	if !c.HasData() {
		suggestions = append(suggestions,
			"How do I upload data?",
			"Show me a demo with sample data")
	} else {
		if c.Sentiment != nil {
			suggestions = append(suggestions, "What are the top 3 sentiment concerns?")
		}
		if c.Capability != nil {
			suggestions = append(suggestions, "Which capability dimension is weakest?")
		}
	}

	if strings.Contains(strings.ToLower(lastMessage), "problem") {
		suggestions = append(suggestions,
			"What interventions would address this?",
			"Show me the business impact")
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

// Confidence estimates how well-grounded an answer can be given the
// attached data. Base 0.5, bumped per loaded instrument and sample size.
func (c Context) Confidence() float64 {
	confidence := 0.5
	if c.Sentiment != nil {
		confidence += 0.2
		if c.Sentiment.Stats.TotalRespondents > 100 {
			confidence += 0.05
		}
	}
	if c.Capability != nil {
		confidence += 0.2
		if len(c.Capability.Dimensions) > 0 {
			confidence += 0.05
		}
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func pageName(path string) string {
	switch path {
	case "", "/":
		return "Landing Page"
	case "/dashboard":
		return "Executive Dashboard"
	case "/assessment":
		return "Capability Assessment"
	case "/demo":
		return "Demo & Testing"
	case "/upload":
		return "Data Upload"
	case "/login":
		return "Login"
	}
	return path
}

func maturityLevel(score float64) string {
	switch {
	case score >= 4.0:
		return "leading"
	case score >= 3.0:
		return "maturing"
	case score >= 2.0:
		return "developing"
	case score > 0:
		return "nascent"
	default:
		return "no data"
	}
}
