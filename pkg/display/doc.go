// Package display renders run progress and installation plans for the
// terminal.
//
// TextReporter implements executor.Reporter and prints one block per
// application. Plans render as plain text, markdown (passed through glamour
// on a terminal) or YAML.
package display
