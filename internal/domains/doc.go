// Package domains loads domain sources and normalizes their entries.
//
// Sources are either a local delimited file or a plain-text URL.
//
//   - Local files are parsed as a table (tab, then comma, then semicolon)
//     with a header column named AdresDomeny. If no delimiter yields a
//     domain, the file is reread as plain text, one candidate per line.
//   - URL bodies are always plain text.
//
// Every candidate goes through Normalize. Invalid entries are dropped, not
// reported. NewSet dedupes and sorts the result into a domain.DomainSet.
package domains
