// Package resolver finds, creates and counts the target URL list.
package resolver
