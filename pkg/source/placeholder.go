package source

import (
	"fmt"
	"time"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

type placeholder struct {
	title, content, source string
	category               domain.Category
	severity               domain.Severity
}

var newsPlaceholders = []placeholder{
	{
		title:    "Major Ransomware Attack Targets Healthcare Sector",
		content:  "A sophisticated ransomware attack has targeted multiple healthcare facilities across the country, causing significant disruption to patient care services.",
		source:   "SecurityWeek",
		category: domain.CategoryLatestAttacks, severity: domain.SeverityHigh,
	},
	{
		title:    "New Zero-Day Vulnerability Discovered in Popular Software",
		content:  "Security researchers have identified a critical zero-day vulnerability that could allow remote code execution in widely-used enterprise software.",
		source:   "Dark Reading",
		category: domain.CategoryVulnerabilities, severity: domain.SeverityHigh,
	},
	{
		title:    "AI-Powered Threat Detection Tool Released",
		content:  "A new AI-powered threat detection platform has been launched, promising to revolutionize how organizations identify and respond to cyber threats.",
		source:   "CSO Online",
		category: domain.CategoryNewTools, severity: domain.SeverityLow,
	},
	{
		title:    "Phishing Campaign Targets Remote Workers",
		content:  "A sophisticated phishing campaign is targeting remote workers with fake collaboration tool notifications, attempting to steal credentials.",
		source:   "Threatpost",
		category: domain.CategoryThreatIntelligence, severity: domain.SeverityMedium,
	},
	{
		title:    "New Cybersecurity Framework Released by NIST",
		content:  "The National Institute of Standards and Technology has released an updated cybersecurity framework with enhanced guidance for organizations.",
		source:   "Infosecurity Magazine",
		category: domain.CategoryGeneral, severity: domain.SeverityLow,
	},
}

var redditPlaceholders = []placeholder{
	{
		title:    "New Ransomware Campaign Targeting Healthcare Organizations",
		content:  "Security researchers have identified a new ransomware variant specifically targeting healthcare systems. The malware uses sophisticated encryption and demands payment in cryptocurrency.",
		source:   "Reddit r/cybersecurity",
		category: domain.CategoryLatestAttacks, severity: domain.SeverityHigh,
	},
	{
		title:    "Zero-Day Vulnerability Found in Popular VPN Software",
		content:  "A critical zero-day vulnerability has been discovered in a widely-used VPN application that could allow remote code execution.",
		source:   "Reddit r/netsec",
		category: domain.CategoryVulnerabilities, severity: domain.SeverityHigh,
	},
	{
		title:    "Open Source SIEM Tool Released for Small Businesses",
		content:  "A new open-source Security Information and Event Management (SIEM) solution has been released, designed specifically for small and medium businesses.",
		source:   "Reddit r/security",
		category: domain.CategoryNewTools, severity: domain.SeverityLow,
	},
	{
		title:    "Phishing Campaign Uses AI-Generated Voice Messages",
		content:  "Security researchers report a new phishing campaign that uses AI-generated voice messages to trick victims into revealing sensitive information.",
		source:   "Reddit r/malware",
		category: domain.CategoryThreatIntelligence, severity: domain.SeverityMedium,
	},
	{
		title:    "GDPR Compliance Checklist for Small Businesses",
		content:  "A comprehensive guide to help small businesses understand and implement GDPR compliance requirements.",
		source:   "Reddit r/privacy",
		category: domain.CategoryGeneral, severity: domain.SeverityLow,
	},
}

// placeholderItems builds up to maxItems fixed items, each one an hour older than the previous
func placeholderItems(list []placeholder, maxItems int, urlFmt string, tags ...string) []domain.NewsItem {
	now := time.Now()
	res := make([]domain.NewsItem, 0, len(list))
	for i, p := range list {
		if i >= maxItems {
			break
		}
		res = append(res, domain.NewsItem{
			Title:       p.title,
			Content:     p.content,
			URL:         fmt.Sprintf(urlFmt, i+1),
			Source:      p.source,
			PublishedAt: now.Add(-time.Duration(i) * time.Hour),
			Category:    p.category,
			Severity:    p.severity,
			Tags:        append([]string{}, tags...),
		})
	}
	return res
}
