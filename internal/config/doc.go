// Package config reads optional scaffolder settings from a project-level
// .strapi-webhook-proxy.yaml file and SWP_* environment variables. Settings
// preselect events and tune the install step; the tool keeps no state.
package config
