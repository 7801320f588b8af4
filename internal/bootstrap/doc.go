// Package bootstrap wires setUpGithubWebhook into the bootstrap lifecycle
// hook of a Strapi project's src/index.ts.
//
// The file belongs to the application, so the patcher only rewrites the
// handful of shapes Strapi generates: a freshly scaffolded hook with its
// parameter commented out, or an empty hook with a plain parameter. Any other
// shape is left untouched and the operator gets manual instructions.
package bootstrap
