package intent

// synonyms maps trigger phrases to static alternates used during
// query expansion. Small and fixed on purpose: expansion is a recall
// aid, not a thesaurus.
var synonyms = map[string][]string{
	"batch apex":        {"database.batchable", "batch job"},
	"queueable":         {"queueable apex", "async apex"},
	"future method":     {"@future", "asynchronous apex"},
	"apex trigger":      {"trigger context", "trigger.new"},
	"governor limits":   {"limits", "heap size", "cpu time"},
	"soql":              {"query", "select statement"},
	"sosl":              {"search query", "find statement"},
	"rest api":          {"http request", "endpoint"},
	"soap api":          {"web service", "wsdl"},
	"bulk api":          {"bulk job", "batch load"},
	"platform event":    {"event message", "publish subscribe"},
	"callout":           {"http callout", "remote site"},
	"flow builder":      {"flow designer", "autolaunched flow"},
	"workflow rule":     {"field update", "workflow action"},
	"sharing rule":      {"record sharing", "access grant"},
	"single sign-on":    {"saml", "identity provider"},
	"sso":               {"saml", "identity provider"},
	"oauth":             {"connected app", "access token"},
	"permission set":    {"permissions", "object access"},
	"dashboard":         {"chart", "dashboard component"},
	"report":            {"report filter", "summary report"},
	"data loader":       {"csv import", "bulk load"},
	"change set":        {"outbound change set", "inbound change set"},
	"managed package":   {"appexchange", "namespace"},
	"unlocked package":  {"package version", "dependency"},
	"lwc":               {"web component", "javascript"},
	"visualforce":       {"apex page", "controller"},
	"named credential":  {"authentication", "endpoint url"},
	"metadata api":      {"deploy", "retrieve"},
	"role hierarchy":    {"role", "subordinates"},
}

// subcategoryVocab lists category-specific vocabulary appended to
// expansions when the classifier detects the subcategory.
var subcategoryVocab = map[string][]string{
	"apex":        {"trigger", "class", "asynchronous", "governor", "limits"},
	"lwc":         {"component", "template", "decorator", "event"},
	"visualforce": {"page", "controller", "expression", "binding"},
	"soql":        {"select", "where", "relationship", "aggregate"},
	"rest":        {"endpoint", "json", "composite", "http"},
	"soap":        {"envelope", "session", "wsdl"},
	"bulk":        {"job", "batch", "csv", "parallel"},
	"metadata":    {"deploy", "retrieve", "manifest"},
	"events":      {"publish", "subscribe", "replay", "channel"},
	"external":    {"callout", "credential", "endpoint"},
	"streaming":   {"topic", "channel", "cometd"},
	"flow":        {"element", "variable", "interview", "screen"},
	"process":     {"criteria", "action", "approval"},
	"sharing":     {"owner", "role", "hierarchy", "visibility"},
	"auth":        {"token", "session", "login", "certificate"},
	"reports":     {"filter", "grouping", "summary"},
	"dashboards":  {"component", "refresh", "source report"},
	"packaging":   {"version", "namespace", "dependency"},
	"changesets":  {"inbound", "outbound", "validation"},
	"users":       {"license", "profile", "role"},
	"data":        {"import", "export", "mapping", "duplicate"},
}
