// Package pmedian picks p facilities out of n candidates so that the
// demand-weighted cost of serving every customer from its nearest open
// facility is as small as possible.
//
// What is inside?
//
//	Two strategies over one read-only cost model:
//		• Greedy drop: start from every customer's favourite site and close
//		  the cheapest-to-lose facility until p remain (fast, not optimal)
//		• Exact: a binary program handed to a pluggable 0-1 solver
//		  (a pure-Go SAT-based backend ships with the module)
//
// Everything is organized under these subpackages:
//
//	costmodel/      cost matrix, demand, labels, nearest-facility assignment
//	pmedian/        Reduce (greedy), Formulate/SolveExact (exact), Solve, Compare, reports
//	mip/            solver-agnostic binary program, Solver interface, LP export
//	mip/pbsolver/   Solver backed by github.com/crillab/gophersat
//	dataset/        CSV loader: label,facility...,Demand
//	cmd/pmedian/    command-line front end
//	examples/       runnable scenario
//
// Quick example:
//
//	          A   B   C   demand
//	customer0 2   5   9   10
//	customer1 8   1   4    5
//
//	p=2 keeps A and B (objective 25); p=1 closes A, the cheaper loss, and
//	keeps B (objective 55).
//
//	go install github.com/katalvlaran/pmedian/cmd/pmedian@latest
package pmedian
