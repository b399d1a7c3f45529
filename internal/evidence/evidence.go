// Package evidence checks that a document backs its factual claims with
// repository, web or configuration citations.
package evidence

import (
	"fmt"
	"regexp"
	"strings"
)

// Citation patterns.
var (
	// [file.ext](relative/path#Lstart-Lend)
	repositoryCitation = regexp.MustCompile(`\[([^\]]+\.(md|tsx?|jsx?|json|ya?ml|sql|graphql))\]\(([^)]+)#L\d+-?\d*\)`)

	// [Title](https://...) optionally followed by "- Accessed: YYYY-MM-DD"
	webCitation = regexp.MustCompile(`(?i)\[([^\]]+)\]\((https?://[^)]+)\)\s*(-\s*(?:Accessed|Retrieved):\s*\d{4}-\d{2}-\d{2})?`)

	datedWebCitation = regexp.MustCompile(`(?i)\[([^\]]+)\]\((https?://[^)]+)\)\s*(-\s*(?:Accessed|Retrieved):\s*\d{4}-\d{2}-\d{2})`)

	// [config.ext](path#Lline)
	configCitation = regexp.MustCompile(`\[([^\]]+\.(json|ya?ml|toml|ini|env))\]\(([^)]+)#L\d+\)`)

	webLink = regexp.MustCompile(`https?://[^\s)]+`)

	referencePhrase = regexp.MustCompile(`(?i)\b(according to|as described in|see|refer to)\b`)
)

var factualClaims = []*regexp.Regexp{
	regexp.MustCompile(`(?i)The project uses|The app uses|This uses|uses\s+\w+`),
	regexp.MustCompile(`(?i)According to|Based on|Research shows|Documentation says`),
	regexp.MustCompile(`(?i)Configuration is|Setting is|Value is|configured to`),
	regexp.MustCompile(`(?i)Architecture includes|System has|Features include|includes\s+\w+`),
	regexp.MustCompile(`(?i)defined in|located in|found in|specified in`),
	regexp.MustCompile(`(?i)as described in|as shown in|see|refer to`),
}

// Options tunes validation.
type Options struct {
	// Verbose adds a suggestion for each detected factual claim pattern.
	Verbose bool
}

// Stats counts what the validator found.
type Stats struct {
	TotalCitations   int  `json:"totalCitations"`
	RepoCitations    int  `json:"repoCitations"`
	WebCitations     int  `json:"webCitations"`
	ConfigCitations  int  `json:"configCitations"`
	BareURLs         int  `json:"bareUrls"`
	HasFactualClaims bool `json:"hasFactualClaims"`
}

// Validation is the outcome of validating one document.
type Validation struct {
	HasIssues   bool     `json:"hasIssues"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Stats       Stats    `json:"stats"`
}

// Validate inspects text for factual claims and citations.
func Validate(text string, opts Options) Validation {
	v := Validation{
		Issues:      []string{},
		Suggestions: []string{},
	}

	for _, pattern := range factualClaims {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}
		v.Stats.HasFactualClaims = true
		if opts.Verbose {
			v.Suggestions = append(v.Suggestions, `Found factual claim pattern: "`+match+`"`)
		}
	}

	v.Stats.RepoCitations = len(repositoryCitation.FindAllStringIndex(text, -1))
	v.Stats.WebCitations = len(webCitation.FindAllStringIndex(text, -1))
	v.Stats.ConfigCitations = len(configCitation.FindAllStringIndex(text, -1))
	v.Stats.TotalCitations = v.Stats.RepoCitations + v.Stats.WebCitations + v.Stats.ConfigCitations

	links := webLink.FindAllStringIndex(text, -1)
	dated := len(datedWebCitation.FindAllStringIndex(text, -1))

	if v.Stats.HasFactualClaims && v.Stats.TotalCitations == 0 {
		v.add("Factual claims detected but no citations found",
			"Add citations using: [file.ext](path#Lstart-Lend) or [Title](url) - Accessed: YYYY-MM-DD")
	}

	if missing := len(links) - dated; missing > 0 {
		v.add(fmt.Sprintf("%d web link(s) missing access dates", missing),
			"Web citations should include access date: [Title](url) - Accessed: YYYY-MM-DD")
	}

	if referencePhrase.MatchString(text) && v.Stats.TotalCitations == 0 {
		v.add("Reference phrases found but no citations included",
			`When using "according to", "see", or "refer to", include a citation`)
	}

	v.Stats.BareURLs = countBareURLs(text, links)
	if v.Stats.BareURLs > 0 {
		v.add(fmt.Sprintf("%d bare URL(s) found", v.Stats.BareURLs),
			"Format URLs as markdown links: [Title](url)")
	}

	v.HasIssues = len(v.Issues) > 0
	return v
}

func (v *Validation) add(issue, suggestion string) {
	v.Issues = append(v.Issues, issue)
	v.Suggestions = append(v.Suggestions, suggestion)
}

// countBareURLs counts links that start the text or follow whitespace or an
// opening parenthesis, excluding the target of a markdown link "](".
func countBareURLs(text string, links [][]int) int {
	count := 0
	for _, loc := range links {
		start := loc[0]
		if start == 0 {
			count++
			continue
		}
		switch prev := text[start-1]; {
		case prev == '(':
			if start >= 2 && text[start-2] == ']' {
				continue
			}
			count++
		case prev == ' ' || prev == '\t' || prev == '\n' || prev == '\r' || prev == '\f' || prev == '\v':
			count++
		}
	}
	return count
}

// FormatReport renders v for a terminal.
func FormatReport(v Validation) string {
	var lines []string

	lines = append(lines, "=== Evidence Citation Validation ===\n")

	lines = append(lines,
		"Statistics:",
		fmt.Sprintf("  Total citations: %d", v.Stats.TotalCitations),
		fmt.Sprintf("  Repository citations: %d", v.Stats.RepoCitations),
		fmt.Sprintf("  Web citations: %d", v.Stats.WebCitations),
		fmt.Sprintf("  Config citations: %d", v.Stats.ConfigCitations),
		fmt.Sprintf("  Bare URLs: %d", v.Stats.BareURLs),
		fmt.Sprintf("  Factual claims: %s", yesNo(v.Stats.HasFactualClaims)),
		"",
	)

	if v.HasIssues {
		lines = append(lines, "Issues:")
		for _, issue := range v.Issues {
			lines = append(lines, "  ❌ "+issue)
		}
		lines = append(lines, "")

		if len(v.Suggestions) > 0 {
			lines = append(lines, "Suggestions:")
			for _, s := range v.Suggestions {
				lines = append(lines, "  💡 "+s)
			}
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, "✅ No evidence citation issues found\n")
	}

	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
