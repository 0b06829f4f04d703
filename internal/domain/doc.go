// Package domain defines the core data models and contracts shared by the
// URL list sync pipeline. It holds plain types and interfaces only; the
// HTTP client, planner and services live in their own packages.
package domain
