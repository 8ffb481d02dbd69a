// Package docs serves a directory of markdown documentation as three MCP
// tools: list the registry, fetch one entry, search the registry.
//
// The same code backs the UI kit and the theme token servers; a Profile
// supplies the tool names and wording for each.
package docs

// Profile names one documentation server and its tools.
type Profile struct {
	// ServerName is reported in initialize, e.g. "kit-docs".
	ServerName string
	// ExtensionKey selects the config block, e.g. "kit-mcp".
	ExtensionKey string

	// Noun is the capitalised singular used in messages ("Component").
	Noun string
	// Nouns is the lowercase plural used in messages ("components").
	Nouns string
	// OverviewTitle heads a registry synthesized from frontmatter.
	OverviewTitle string

	ListTool   string
	GetTool    string
	SearchTool string

	ListDescription   string
	GetDescription    string
	SearchDescription string
	NameHint          string
	QueryHint         string

	Instructions string
}

var KitProfile = Profile{
	ServerName:    "kit-docs",
	ExtensionKey:  "kit-mcp",
	Noun:          "Component",
	Nouns:         "components",
	OverviewTitle: "UI kit components",

	ListTool:   "list_kit_components",
	GetTool:    "get_kit_component_doc",
	SearchTool: "search_kit_components",

	ListDescription: "Returns the registry of all UI components with a short description of each. " +
		"Use it as the first step to see which components exist.",
	GetDescription: "Returns the full documentation of one UI component: props, intended use and usage examples. " +
		"Takes the exact component name.",
	SearchDescription: "Searches UI components by keyword in their names and descriptions. " +
		"Returns the matching registry entries.",
	NameHint:  "Exact component name starting with a capital letter, for example: Button, TextField, Accordion",
	QueryHint: `Keyword to search for, for example: "button", "form", "table"`,

	Instructions: "Documentation for the project's UI kit. Call list_kit_components first, " +
		"then get_kit_component_doc for the components you need.",
}

var ThemeProfile = Profile{
	ServerName:    "theme-docs",
	ExtensionKey:  "theme-mcp",
	Noun:          "Token group",
	Nouns:         "groups",
	OverviewTitle: "Theme token groups",

	ListTool:   "list_theme_token_groups",
	GetTool:    "get_theme_token_group_doc",
	SearchTool: "search_theme_tokens",

	ListDescription: "Returns the registry of all design token groups of the theme with a short description of each group. " +
		"Use it as the first step to see which tokens and utility classes exist.",
	GetDescription: "Returns the full documentation of one theme token group: CSS variables, utility classes, " +
		"Figma mapping and usage examples. Takes the exact group name.",
	SearchDescription: "Searches theme token groups by keyword in their names and descriptions. " +
		"Returns the matching registry entries.",
	NameHint:  "Exact token group name, for example: brand, surface, border, spacing, typography, utilities",
	QueryHint: `Keyword to search for, for example: "color", "spacing", "font"`,

	Instructions: "Design token documentation for the project's theme. Call list_theme_token_groups first, " +
		"then get_theme_token_group_doc for the groups you need.",
}

