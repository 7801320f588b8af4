// Package cli defines the Cobra command tree for strapi-webhook-proxy. Each
// file registers one command with the root command. Commands only parse
// flags and format output; the work happens in the internal packages.
package cli
