// Package executor installs the applications of a recipe document.
//
// An Executor validates and expands the document, then walks the
// applications in declaration order. For each application it resolves the
// recipe for the target platform, runs the optional installed-check and
// executes the operations one at a time through an ExecutionPlatform. A
// failing operation aborts its application but never the run; outcomes are
// collected in a types.RunResult and streamed to a Reporter.
package executor
