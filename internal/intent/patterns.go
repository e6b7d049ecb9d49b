package intent

import "github.com/refman-tools/refman-cli/internal/core/domain"

// Pattern maps a set of trigger phrases to a topical scope. When any
// phrase appears in a query (case-insensitive substring), the
// pattern's weight is credited to its (category, subcategory) pair
// once per matching phrase.
type Pattern struct {
	Phrases     []string
	Category    domain.Category
	Subcategory string
	Weight      int
}

// DefaultPatterns is the built-in pattern table. Order matters: when
// two scopes accumulate equal weight, the first-declared scope wins.
// Weights reward specificity; generic single-word triggers sit at the
// bottom of each topic so they only decide otherwise-ambiguous queries.
func DefaultPatterns() []Pattern {
	return []Pattern{
		// development / apex
		{Phrases: []string{"batch apex"}, Category: domain.CategoryDevelopment, Subcategory: "apex", Weight: 12},
		{Phrases: []string{"queueable"}, Category: domain.CategoryDevelopment, Subcategory: "apex", Weight: 10},
		{Phrases: []string{"future method"}, Category: domain.CategoryDevelopment, Subcategory: "apex", Weight: 10},
		{Phrases: []string{"governor limits"}, Category: domain.CategoryDevelopment, Subcategory: "apex", Weight: 10},
		{Phrases: []string{"apex trigger", "trigger handler"}, Category: domain.CategoryDevelopment, Subcategory: "apex", Weight: 8},
		{Phrases: []string{"apex class", "apex method"}, Category: domain.CategoryDevelopment, Subcategory: "apex", Weight: 8},
		{Phrases: []string{"test class", "apex test"}, Category: domain.CategoryDevelopment, Subcategory: "apex", Weight: 9},
		{Phrases: []string{"apex"}, Category: domain.CategoryDevelopment, Subcategory: "apex", Weight: 5},

		// development / lwc
		{Phrases: []string{"lightning web component", "lwc"}, Category: domain.CategoryDevelopment, Subcategory: "lwc", Weight: 12},
		{Phrases: []string{"wire adapter"}, Category: domain.CategoryDevelopment, Subcategory: "lwc", Weight: 10},
		{Phrases: []string{"lightning component"}, Category: domain.CategoryDevelopment, Subcategory: "lwc", Weight: 8},
		{Phrases: []string{"lightning"}, Category: domain.CategoryDevelopment, Subcategory: "lwc", Weight: 4},

		// development / visualforce
		{Phrases: []string{"visualforce"}, Category: domain.CategoryDevelopment, Subcategory: "visualforce", Weight: 12},
		{Phrases: []string{"vf page"}, Category: domain.CategoryDevelopment, Subcategory: "visualforce", Weight: 10},

		// development / soql
		{Phrases: []string{"soql"}, Category: domain.CategoryDevelopment, Subcategory: "soql", Weight: 12},
		{Phrases: []string{"sosl"}, Category: domain.CategoryDevelopment, Subcategory: "soql", Weight: 12},
		{Phrases: []string{"relationship query", "parent-to-child"}, Category: domain.CategoryDevelopment, Subcategory: "soql", Weight: 9},
		{Phrases: []string{"query language"}, Category: domain.CategoryDevelopment, Subcategory: "soql", Weight: 6},

		// api / rest
		{Phrases: []string{"rest api"}, Category: domain.CategoryAPI, Subcategory: "rest", Weight: 12},
		{Phrases: []string{"composite request"}, Category: domain.CategoryAPI, Subcategory: "rest", Weight: 10},
		{Phrases: []string{"rest resource", "rest endpoint"}, Category: domain.CategoryAPI, Subcategory: "rest", Weight: 9},

		// api / soap
		{Phrases: []string{"soap api"}, Category: domain.CategoryAPI, Subcategory: "soap", Weight: 12},
		{Phrases: []string{"wsdl"}, Category: domain.CategoryAPI, Subcategory: "soap", Weight: 10},

		// api / bulk
		{Phrases: []string{"bulk api"}, Category: domain.CategoryAPI, Subcategory: "bulk", Weight: 12},
		{Phrases: []string{"bulk job", "bulk query"}, Category: domain.CategoryAPI, Subcategory: "bulk", Weight: 9},

		// api / metadata
		{Phrases: []string{"metadata api"}, Category: domain.CategoryAPI, Subcategory: "metadata", Weight: 12},
		{Phrases: []string{"custom metadata"}, Category: domain.CategoryAPI, Subcategory: "metadata", Weight: 8},

		// integration / events
		{Phrases: []string{"platform event"}, Category: domain.CategoryIntegration, Subcategory: "events", Weight: 12},
		{Phrases: []string{"change data capture"}, Category: domain.CategoryIntegration, Subcategory: "events", Weight: 12},
		{Phrases: []string{"event bus"}, Category: domain.CategoryIntegration, Subcategory: "events", Weight: 8},

		// integration / external
		{Phrases: []string{"named credential"}, Category: domain.CategoryIntegration, Subcategory: "external", Weight: 10},
		{Phrases: []string{"external service"}, Category: domain.CategoryIntegration, Subcategory: "external", Weight: 9},
		{Phrases: []string{"callout"}, Category: domain.CategoryIntegration, Subcategory: "external", Weight: 8},

		// integration / streaming
		{Phrases: []string{"streaming api"}, Category: domain.CategoryIntegration, Subcategory: "streaming", Weight: 10},
		{Phrases: []string{"outbound message"}, Category: domain.CategoryIntegration, Subcategory: "streaming", Weight: 9},

		// automation / flow
		{Phrases: []string{"flow builder"}, Category: domain.CategoryAutomation, Subcategory: "flow", Weight: 12},
		{Phrases: []string{"record-triggered flow", "record triggered flow"}, Category: domain.CategoryAutomation, Subcategory: "flow", Weight: 10},
		{Phrases: []string{"screen flow"}, Category: domain.CategoryAutomation, Subcategory: "flow", Weight: 10},
		{Phrases: []string{"flow"}, Category: domain.CategoryAutomation, Subcategory: "flow", Weight: 5},

		// automation / process
		{Phrases: []string{"process builder"}, Category: domain.CategoryAutomation, Subcategory: "process", Weight: 12},
		{Phrases: []string{"workflow rule"}, Category: domain.CategoryAutomation, Subcategory: "process", Weight: 10},
		{Phrases: []string{"approval process"}, Category: domain.CategoryAutomation, Subcategory: "process", Weight: 10},

		// security / sharing
		{Phrases: []string{"sharing rule"}, Category: domain.CategorySecurity, Subcategory: "sharing", Weight: 12},
		{Phrases: []string{"org-wide default", "organization-wide default"}, Category: domain.CategorySecurity, Subcategory: "sharing", Weight: 10},
		{Phrases: []string{"record access"}, Category: domain.CategorySecurity, Subcategory: "sharing", Weight: 8},

		// security / auth
		{Phrases: []string{"single sign-on", "sso"}, Category: domain.CategorySecurity, Subcategory: "auth", Weight: 12},
		{Phrases: []string{"oauth"}, Category: domain.CategorySecurity, Subcategory: "auth", Weight: 10},
		{Phrases: []string{"permission set"}, Category: domain.CategorySecurity, Subcategory: "auth", Weight: 10},

		// analytics / reports
		{Phrases: []string{"report type"}, Category: domain.CategoryAnalytics, Subcategory: "reports", Weight: 10},
		{Phrases: []string{"report builder"}, Category: domain.CategoryAnalytics, Subcategory: "reports", Weight: 10},
		{Phrases: []string{"report"}, Category: domain.CategoryAnalytics, Subcategory: "reports", Weight: 5},

		// analytics / dashboards
		{Phrases: []string{"dashboard"}, Category: domain.CategoryAnalytics, Subcategory: "dashboards", Weight: 10},

		// deployment / packaging
		{Phrases: []string{"unlocked package", "managed package"}, Category: domain.CategoryDeployment, Subcategory: "packaging", Weight: 12},
		{Phrases: []string{"package version"}, Category: domain.CategoryDeployment, Subcategory: "packaging", Weight: 9},

		// deployment / changesets
		{Phrases: []string{"change set"}, Category: domain.CategoryDeployment, Subcategory: "changesets", Weight: 10},
		{Phrases: []string{"sandbox refresh"}, Category: domain.CategoryDeployment, Subcategory: "changesets", Weight: 9},
		{Phrases: []string{"sandbox"}, Category: domain.CategoryDeployment, Subcategory: "changesets", Weight: 6},
		{Phrases: []string{"deploy"}, Category: domain.CategoryDeployment, Subcategory: "changesets", Weight: 6},

		// administration / users
		{Phrases: []string{"role hierarchy"}, Category: domain.CategoryAdministration, Subcategory: "users", Weight: 10},
		{Phrases: []string{"user license"}, Category: domain.CategoryAdministration, Subcategory: "users", Weight: 9},

		// administration / data
		{Phrases: []string{"data loader"}, Category: domain.CategoryAdministration, Subcategory: "data", Weight: 12},
		{Phrases: []string{"duplicate rule"}, Category: domain.CategoryAdministration, Subcategory: "data", Weight: 9},
		{Phrases: []string{"data import"}, Category: domain.CategoryAdministration, Subcategory: "data", Weight: 9},
	}
}
