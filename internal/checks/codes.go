package checks

// Check names, as they appear in Report.ChecksRun.
const (
	NameFrontMatterSyntax   = "front-matter-syntax"
	NameRequiredFields      = "required-fields"
	NameModuleListFormat    = "module-list-format"
	NameRecommendedFields   = "recommended-fields"
	NameAgentRequiredFields = "agent-required-fields"
	NameBodyContent         = "body-content"
	NameSourceReachability  = "source-reachability"
)

// Issue codes.
const (
	CodeMissingBundleSection     = "MISSING_BUNDLE_SECTION"
	CodeInvalidBundleSection     = "INVALID_BUNDLE_SECTION"
	CodeMissingBundleName        = "MISSING_BUNDLE_NAME"
	CodeInvalidModuleList        = "INVALID_MODULE_LIST"
	CodeInvalidModuleFormat      = "INVALID_MODULE_FORMAT"
	CodeMissingModuleKey         = "MISSING_MODULE_KEY"
	CodeMissingBundleVersion     = "MISSING_BUNDLE_VERSION"
	CodeMissingBundleDescription = "MISSING_BUNDLE_DESCRIPTION"
	CodeInvalidMetaSection       = "INVALID_META_SECTION"
	CodeMissingAgentName         = "MISSING_AGENT_NAME"
	CodeMissingAgentDescription  = "MISSING_AGENT_DESCRIPTION"
	CodeEmptyBody                = "EMPTY_BODY"
	CodeUnreachableSource        = "UNREACHABLE_SOURCE"
	CodeInvalidSourceURL         = "INVALID_SOURCE_URL"
)

// moduleSections are the top-level keys holding module lists, in the order
// they are inspected.
var moduleSections = []string{"providers", "tools", "hooks"}
