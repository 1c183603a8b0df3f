// Package mip describes binary linear programs and the boundary to the
// external engines that solve them.
//
// A Model is plain data: declared binary variables, a linear objective to
// minimise and a list of linear constraints (≤, =, ≥). Formulators build a
// Model, hand it to a Solver and read the variable values back from the
// returned Solution. The package never solves anything itself.
//
// Solver contract:
//
//   - (sol, nil)  – a feasible solution; sol.Values[k] is the value of Vars[k].
//   - (nil, nil)  – the engine proved infeasibility or gave up without a
//     feasible point. This is a normal outcome.
//   - (_, err)    – the engine itself failed (bad input, internal fault, ...).
//
// For debugging and reproducibility a Model can be written in CPLEX LP text
// format with WriteLP.
package mip
