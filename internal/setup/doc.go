// Package setup runs the scaffolding pipeline: detect the project, ask for
// events, copy templates, extend .env, patch the bootstrap hook and install
// type declarations. Only a failed detection (or an aborted prompt, before
// anything was written) stops the run; every other step reports its outcome
// and the pipeline moves on.
package setup
