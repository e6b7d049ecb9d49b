package services

import (
	"regexp"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// ClassificationRule assigns category metadata to a manual based on
// its file name. Rules are evaluated in declaration order and the
// first match wins.
type ClassificationRule struct {
	// Pattern is matched against the lowercased file name.
	Pattern *regexp.Regexp

	Category    domain.Category
	Subcategory string
	DocType     domain.DocType
	Priority    int
	Keywords    []string
}

// defaultRule classifies files no rule recognises. Unrecognised
// manuals stay searchable, just with a low ranking boost.
var defaultRule = ClassificationRule{
	Category: domain.CategoryAdministration,
	DocType:  domain.DocTypeGuide,
	Priority: 3,
}

// DefaultRules returns the built-in file name classification table.
// More specific patterns come first: a file mentioning both "apex" and
// "api" is an Apex manual, not a generic API one.
func DefaultRules() []ClassificationRule {
	mk := func(pattern string, cat domain.Category, sub string, dt domain.DocType,
		priority int, keywords ...string) ClassificationRule {
		return ClassificationRule{
			Pattern:     regexp.MustCompile(pattern),
			Category:    cat,
			Subcategory: sub,
			DocType:     dt,
			Priority:    priority,
			Keywords:    keywords,
		}
	}

	return []ClassificationRule{
		// Development.
		mk(`apex`, domain.CategoryDevelopment, "apex", domain.DocTypeReference, 9,
			"apex", "trigger", "class"),
		mk(`lwc|lightning[_-]?web|lightning[_-]?component`, domain.CategoryDevelopment, "lwc",
			domain.DocTypeGuide, 8, "lwc", "component", "javascript"),
		mk(`visualforce`, domain.CategoryDevelopment, "visualforce", domain.DocTypeReference, 6,
			"visualforce", "page"),
		mk(`soql|sosl|query[_-]?language`, domain.CategoryDevelopment, "soql",
			domain.DocTypeReference, 8, "soql", "query"),

		// APIs.
		mk(`rest[_-]?api`, domain.CategoryAPI, "rest", domain.DocTypeReference, 8,
			"rest", "endpoint"),
		mk(`soap[_-]?api|wsdl`, domain.CategoryAPI, "soap", domain.DocTypeReference, 6,
			"soap", "wsdl"),
		mk(`bulk[_-]?api`, domain.CategoryAPI, "bulk", domain.DocTypeReference, 7,
			"bulk", "batch"),
		mk(`metadata[_-]?api`, domain.CategoryAPI, "metadata", domain.DocTypeReference, 7,
			"metadata", "deploy"),

		// Integration.
		mk(`platform[_-]?events|event[_-]?bus|streaming`, domain.CategoryIntegration, "events",
			domain.DocTypeGuide, 7, "events", "publish", "subscribe"),
		mk(`integration|external[_-]?services|connect`, domain.CategoryIntegration, "external",
			domain.DocTypeGuide, 6, "integration", "callout"),

		// Automation.
		mk(`flow`, domain.CategoryAutomation, "flow", domain.DocTypeGuide, 8,
			"flow", "automation"),
		mk(`process[_-]?builder|workflow`, domain.CategoryAutomation, "process",
			domain.DocTypeGuide, 5, "workflow", "process"),

		// Security.
		mk(`sharing|record[_-]?access`, domain.CategorySecurity, "sharing",
			domain.DocTypeGuide, 7, "sharing", "visibility"),
		mk(`security|identity|authentication|oauth|sso`, domain.CategorySecurity, "auth",
			domain.DocTypeGuide, 7, "security", "authentication"),

		// Analytics.
		mk(`report`, domain.CategoryAnalytics, "reports", domain.DocTypeGuide, 6,
			"reports"),
		mk(`dashboard|analytics`, domain.CategoryAnalytics, "dashboards",
			domain.DocTypeGuide, 6, "dashboards"),

		// Deployment.
		mk(`packaging|package`, domain.CategoryDeployment, "packaging",
			domain.DocTypeGuide, 6, "packaging"),
		mk(`change[_-]?sets?|deploy`, domain.CategoryDeployment, "changesets",
			domain.DocTypeGuide, 5, "deployment"),

		// Administration.
		mk(`release[_-]?notes`, domain.CategoryAdministration, "", domain.DocTypeReleaseNotes, 4,
			"release notes"),
		mk(`cheat[_-]?sheet`, domain.CategoryAdministration, "", domain.DocTypeCheatsheet, 5,
			"cheatsheet"),
		mk(`user[_-]?management|permissions?|profiles?`, domain.CategoryAdministration, "users",
			domain.DocTypeGuide, 5, "users", "permissions"),
		mk(`data[_-]?loader|import|export`, domain.CategoryAdministration, "data",
			domain.DocTypeGuide, 5, "data", "import"),
		mk(`admin|setup`, domain.CategoryAdministration, "users", domain.DocTypeGuide, 5,
			"administration"),
	}
}

// classify applies the first matching rule to a lowercased file name.
func classify(rules []ClassificationRule, fileNameLower string) ClassificationRule {
	for _, rule := range rules {
		if rule.Pattern.MatchString(fileNameLower) {
			return rule
		}
	}
	return defaultRule
}

// apiVersionPattern recognises version markers like "v58" or
// "api_v249" in file names.
var apiVersionPattern = regexp.MustCompile(`(?:^|[_-])v(\d{2,3})(?:[_.-]|$)`)

// extractAPIVersion pulls an API version marker out of a lowercased
// file name, or returns empty.
func extractAPIVersion(fileNameLower string) string {
	m := apiVersionPattern.FindStringSubmatch(fileNameLower)
	if m == nil {
		return ""
	}
	return "v" + m[1]
}
