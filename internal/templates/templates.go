package templates

import (
	"fmt"
	"strings"
)

// Category is the closed set of project types the classifier may produce.
// Nothing outside this set is ever looked up.
type Category string

const (
	CategoryReact Category = "reactjs"
	CategoryNode  Category = "nodejs"
)

// ParseCategory normalizes a raw classifier output and reports whether it is
// a member of the closed set.
func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryReact:
		return CategoryReact, true
	case CategoryNode:
		return CategoryNode, true
	}
	return "", false
}

// BasePrompt is the fixed first instruction fragment of every scaffold
// session, independent of category.
const BasePrompt = "For all designs I ask you to make, have them be beautiful, not cookie cutter. Make webpages that are fully featured and worthy for production.\n\nBy default, this template supports JSX syntax with Tailwind CSS classes, React hooks, and Lucide React for icons. Do not install other packages for UI themes, icons, etc unless absolutely necessary or I request them.\n\nUse icons from lucide-react for logos."

// Bundle is the immutable scaffold payload for one category. HiddenFiles
// lists files that exist in the starter project but are kept out of the
// model's visible context (lockfiles, ignore files).
type Bundle struct {
	BasePrompt  string
	UIPrompt    string
	HiddenFiles []string
}

var bundles = map[Category]Bundle{
	CategoryReact: {
		BasePrompt:  reactBasePrompt,
		UIPrompt:    reactBasePrompt,
		HiddenFiles: []string{".gitignore", "package-lock.json", ".bolt/prompt"},
	},
	CategoryNode: {
		BasePrompt:  nodeBasePrompt,
		UIPrompt:    nodeBasePrompt,
		HiddenFiles: []string{".gitignore", "package-lock.json"},
	},
}

// Lookup is a total function over the closed Category set; callers only
// reach it with values validated by ParseCategory.
func Lookup(cat Category) Bundle {
	return bundles[cat]
}

// ArtifactMessage renders the second instruction fragment of a scaffold
// session: the visible project files plus an explicit disclosure of the
// files withheld from the model's context. The hidden list is static, never
// derived from a filesystem scan.
func ArtifactMessage(b Bundle) string {
	var sb strings.Builder
	sb.WriteString("Here is an artifact that contains all files of the project visible to you.\n")
	sb.WriteString("Consider the contents of ALL files in the project.\n\n")
	sb.WriteString(b.BasePrompt)
	sb.WriteString("\n\nHere is a list of files that exist on the file system but are not being shown to you:\n\n")
	for _, f := range b.HiddenFiles {
		fmt.Fprintf(&sb, "  - %s\n", f)
	}
	return sb.String()
}
