// Package task defines the to-do task domain model and its persistence.
//
// Tasks belong to exactly one owner and move through three states:
// created → in_progress → done (transitions are unconstrained; any state
// can be set directly). Deleting an owner removes their tasks.
package task
