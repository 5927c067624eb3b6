// Package cli provides the output formatting shared by attune's commands:
// table, json and yaml rendering of plan and pruning results, plus spinner
// plumbing for long-running collaborator calls.
package cli
