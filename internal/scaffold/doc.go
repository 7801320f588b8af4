// Package scaffold materializes the embedded Strapi templates into a
// project. Existing files are never overwritten: a second run only reports
// what it skipped.
package scaffold
