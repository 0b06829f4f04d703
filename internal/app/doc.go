// Package app wires application dependencies for the CLI.
//
// It loads Config from YAML and the environment, builds the loader,
// transport, API client and services from it, and exposes them via Wire.
// Wire also runs the end-to-end pipeline: load, plan, transfer, report.
package app
