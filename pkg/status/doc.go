// Package status renders batch outcomes for the human operator: one line
// per candidate file as it is processed, warnings for partial matches, and
// the final tally.
package status
