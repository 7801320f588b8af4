package bootstrap

import (
	"regexp"
	"strings"
)

// Match classifies the bootstrap hook found in a source file.
type Match int

const (
	// MatchNone means no known hook shape and no existing call.
	MatchNone Match = iota
	// MatchCommented is the generated hook: bootstrap(/* ... */) {}.
	MatchCommented
	// MatchEmptyBody is an uncommented empty hook: bootstrap({ strapi }) {}.
	MatchEmptyBody
	// MatchAlreadyPatched means setUpGithubWebhook is already called.
	MatchAlreadyPatched
)

func (m Match) String() string {
	switch m {
	case MatchNone:
		return "none"
	case MatchCommented:
		return "commented-parameter"
	case MatchEmptyBody:
		return "empty-body"
	case MatchAlreadyPatched:
		return "already-patched"
	default:
		return "unknown"
	}
}

const (
	// ImportLine is prepended to the file when the hook is patched.
	ImportLine = `import { setUpGithubWebhook } from "./util/set-up-github-webhook";`

	importMarker  = "import { setUpGithubWebhook }"
	callMarker    = "setUpGithubWebhook("
	emptyBodyHook = "bootstrap({ strapi }) {}"

	coreImportCommented = "// import type { Core }"
	coreImport          = "import type { Core }"

	typedHook = "async bootstrap({ strapi }: { strapi: Core.Strapi }) {\n    await setUpGithubWebhook(strapi);\n  }"
	plainHook = "async bootstrap({ strapi }) {\n    await setUpGithubWebhook(strapi);\n  }"
)

// commentedHook matches the hook Strapi generates, whatever the commented
// parameter text is. A leading "async" is consumed so it is not doubled.
var commentedHook = regexp.MustCompile(`(?:async\s+)?bootstrap\s*\(\s*/\*.*?\*/\s*\)\s*\{\s*\}`)

var emptyBody = regexp.MustCompile(`(?:async\s+)?` + regexp.QuoteMeta(emptyBodyHook))

// Result is the outcome of Patch.
type Result struct {
	Text            string
	Modified        bool
	Match           Match
	ImportAdded     bool
	CoreUncommented bool
}

// Classify reports which known shape text has. The hook shapes take
// precedence over the already-patched check so that a stray call elsewhere in
// the file does not hide a hook that still needs the call.
func Classify(text string) Match {
	switch {
	case commentedHook.MatchString(text):
		return MatchCommented
	case emptyBody.MatchString(text):
		return MatchEmptyBody
	case strings.Contains(text, callMarker):
		return MatchAlreadyPatched
	default:
		return MatchNone
	}
}

// Patch returns text with the import and the hook call injected. Text is
// returned unchanged with Modified false when the hook is already patched or
// has a shape Patch does not know.
func Patch(text string) Result {
	res := Result{Text: text, Match: Classify(text)}

	switch res.Match {
	case MatchCommented:
		res.Text = replaceFirst(commentedHook, res.Text, typedHook)
		// The typed signature needs Core in scope.
		if strings.Contains(res.Text, coreImportCommented) {
			res.Text = strings.Replace(res.Text, coreImportCommented, coreImport, 1)
			res.CoreUncommented = true
		}
	case MatchEmptyBody:
		res.Text = replaceFirst(emptyBody, res.Text, plainHook)
	default:
		return res
	}

	if !HasImport(res.Text) {
		res.Text = ImportLine + "\n" + res.Text
		res.ImportAdded = true
	}
	res.Modified = res.Text != text
	return res
}

// HasImport reports whether text already imports setUpGithubWebhook.
func HasImport(text string) bool {
	return strings.Contains(text, importMarker)
}

// ManualInstructions are printed when Patch cannot handle the file.
func ManualInstructions() []string {
	return []string{
		"Please manually add:",
		"   " + ImportLine,
		"   // In bootstrap:",
		"   await setUpGithubWebhook(strapi);",
	}
}

// replaceFirst replaces the leftmost match of re in s with a literal.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
