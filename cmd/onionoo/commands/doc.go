// Package commands defines the onionoo CLI.
//
// Commands
//
//   - all      Print every relay of the directory
//   - entry    Print relays carrying the Guard flag
//   - exit     Print relays carrying the Exit flag
//
// Output is a table by default; --output json prints a details-shaped
// document ({"relays":[...]}) and --output yaml the same data as YAML.
//
// Settings come from ONIONOO_* environment variables (see internal/config);
// flags given on the command line take precedence.
package commands
