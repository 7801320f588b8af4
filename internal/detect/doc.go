// Package detect decides whether a directory is a Strapi project the
// scaffolder can work with. Inspect gathers file-system facts once;
// Compatible is a pure predicate over those facts.
package detect
