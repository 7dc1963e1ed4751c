// Package stage provides the status catalog: the finite set of department
// sub-statuses and the directed transition graph between them.
//
// The catalog is pure configuration data. It answers three questions:
//   - which sub-statuses exist and which department group each belongs to
//   - whether a forward move between two sub-statuses is legal (IsTransitionAllowed)
//   - which stages an item may be sent back to after a quality-control failure
//     (the return-to-stage allow-list)
//
// Terminal states (leather_out_of_stock, delivered) have an empty outbound
// edge set. The package performs no I/O and holds no mutable state.
package stage
