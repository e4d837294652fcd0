package llm

import (
	"strings"

	"github.com/cybernews-agent/cybernews/pkg/content"
	"github.com/cybernews-agent/cybernews/pkg/domain"
)

const summaryRunes = 200

type keywordSet struct {
	name     string
	keywords []string
}

// scored in declaration order, the first maximum wins
var categoryKeywords = []keywordSet{
	{string(domain.CategoryLatestAttacks), []string{"ransomware", "malware", "attack", "breach", "hack", "incident"}},
	{string(domain.CategoryVulnerabilities), []string{"vulnerability", "exploit", "cve", "zero-day", "patch", "flaw"}},
	{string(domain.CategoryNewTools), []string{"tool", "platform", "software", "solution", "framework", "technology"}},
	{string(domain.CategoryThreatIntelligence), []string{"threat", "intelligence", "apt", "campaign", "actor", "group"}},
	{string(domain.CategoryGeneral), []string{"security", "cybersecurity", "infosec", "policy", "regulation", "compliance"}},
}

var severityKeywords = []keywordSet{
	{string(domain.SeverityHigh), []string{"critical", "severe", "urgent", "emergency", "zero-day", "ransomware", "breach"}},
	{string(domain.SeverityMedium), []string{"moderate", "significant", "important", "vulnerability", "exploit"}},
	{string(domain.SeverityLow), []string{"minor", "update", "patch", "tool", "announcement", "guidance"}},
}

var tagVocabulary = []string{
	"ransomware", "malware", "phishing", "breach", "vulnerability", "exploit", "cve", "zero-day", "apt",
	"threat", "security", "cybersecurity", "infosec", "hack", "attack", "incident", "tool", "platform",
	"framework", "policy", "compliance",
}

var summaryKeywords = []string{"attack", "breach", "vulnerability", "threat", "security", "malware", "ransomware"}

// AnalyzeRules classifies an item with keyword rules only, the result is deterministic
func AnalyzeRules(title, text string) domain.Analysis {
	lower := strings.ToLower(title + " " + text)
	return domain.Analysis{
		Summary:  extractSummary(text),
		Category: domain.Category(bestMatch(lower, categoryKeywords, string(domain.CategoryGeneral))),
		Severity: domain.Severity(bestMatch(lower, severityKeywords, string(domain.SeverityMedium))),
		Tags:     extractTags(lower),
	}
}

// analyzeText is used when the model answered with something that is not a JSON object
func analyzeText(text string) domain.Analysis {
	lower := strings.ToLower(text)
	return domain.Analysis{
		Summary:  clip(text),
		Category: domain.Category(bestMatch(lower, categoryKeywords, string(domain.CategoryGeneral))),
		Severity: domain.Severity(bestMatch(lower, severityKeywords, string(domain.SeverityMedium))),
		Tags:     extractTags(lower),
	}
}

// extractSummary keeps the first sentence and the later sentence with the most summary keywords
func extractSummary(text string) string {
	sentences := strings.Split(text, ". ")
	if len(sentences) < 2 {
		return clip(text)
	}

	best, bestCount := "", 0
	for _, s := range sentences[1:] {
		if n := countKeywords(strings.ToLower(s), summaryKeywords); n > bestCount {
			best, bestCount = s, n
		}
	}

	parts := []string{sentences[0]}
	if best != "" && best != sentences[0] {
		parts = append(parts, best)
	}
	return strings.Join(parts, ". ") + "."
}

func clip(text string) string {
	if len([]rune(text)) <= summaryRunes {
		return text
	}
	return content.Truncate(text, summaryRunes) + "..."
}

func bestMatch(lower string, sets []keywordSet, fallback string) string {
	best, bestScore := fallback, 0
	for _, set := range sets {
		if score := countKeywords(lower, set.keywords); score > bestScore {
			best, bestScore = set.name, score
		}
	}
	return best
}

func countKeywords(lower string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}

func extractTags(lower string) []string {
	tags := []string{}
	for _, kw := range tagVocabulary {
		if len(tags) >= domain.MaxTags {
			break
		}
		if strings.Contains(lower, kw) {
			tags = append(tags, kw)
		}
	}
	return tags
}
