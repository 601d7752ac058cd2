// Package internal contains the implementation packages of the mvcgen CLI.
//
// # Package Organization
//
// The internal packages are organized by pipeline stage:
//
//   - scanner: Go tokenizer wrapper that turns //mvc: directives into tokens
//   - parser: controller and view parsing into the application model, with
//     an optional checksum-validated parse cache
//   - types: the application model (controllers, actions, views, parts)
//   - generator: render functions, index files and dispatch code
//   - build: one parse and generate cycle with metrics
//   - watcher: debounced file system monitoring for watch mode
//   - scaffolding: starter projects, controllers and views
//   - config: Viper configuration with struct-tag validation
//   - errors: the two parse error kinds shared by every stage
//   - logging: structured slog-based logging
//   - version: build version reporting
//
// # Data Flow
//
//   - Scanner feeds controller tokens to the parser
//   - Parser produces one Application per build
//   - Generator writes Go source derived from the Application only
//   - Watcher batches changes and asks the build pipeline to run again
//
// Generated code depends on the public runtime package pkg/mvc.
package internal
