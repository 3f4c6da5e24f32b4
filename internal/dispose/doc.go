// Package dispose implements the dispose-state dataflow analysis: a
// forward, monotone dataflow pass over a procedure's control-flow graph
// that tracks, for every abstract heap location of a disposable type,
// whether the location has been disposed on all, some, or no paths.
//
// The package is intraprocedural and takes its control-flow graph,
// points-to result, null result, and type-system facts as narrow
// read-only interfaces (see collaborators.go) rather than importing any
// concrete IR. internal/dispose/irbridge adapts Kanso's own SSA IR to
// those interfaces; nothing in this package depends on irbridge.
package dispose
