// Package commands defines the urllistsync CLI.
//
// Commands
//
//   - sync      Push a domain source into a Netskope URL list
//   - plan      Load and chunk a source without calling the API
//   - lists     Print the tenant's URL list names
//   - deploy    Apply pending URL list changes
//
// # Configuration
//
// Settings come from, in increasing precedence: built-in defaults, the YAML
// file named by --config (or URLLISTSYNC_CONFIG), URLLISTSYNC_* environment
// variables, and flags set on the command line.
//
// The root command builds the zap logger and the merged app.Config before
// any subcommand runs. Logs go to stderr; summaries go to stdout.
package commands
