// # Available Commands
//
//   - resolve: Resolve a registered path, filling placeholders from name=value arguments
//   - list: List registered paths with their templates
//   - validate: Report every configuration and registration problem
//   - check: Validate individual path segments
//   - watch: Re-validate the configuration when the file changes
//   - version: Show build information
//
// # Command Examples
//
//	// Resolve a static path
//	pathreg resolve SaveDir
//
//	// Fill a template placeholder
//	pathreg resolve LevelData id=dungeon_01
//
//	// List paths as YAML
//	pathreg list --format yaml
//
//	// Validate with a custom config in debug mode
//	pathreg validate --config game.yml --mode debug
//
// # Output
//
// Command results go to stdout; logs go to stderr so that json and yaml
// output can be piped. Commands exit non-zero when any path, value or
// configuration entry is rejected.
package cmd
