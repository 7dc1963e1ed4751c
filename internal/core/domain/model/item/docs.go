// Package item provides domain entities and business logic for tracked
// production items. It implements the Item aggregate root with the
// department-transfer protocol and the coarse lifecycle state machine.
//
// The package includes:
//   - Item: The aggregate root holding the current-state projection of one physical unit
//   - Status: A state machine enforcing the lifecycle transition table
//   - PreparationType: In-house vs. outsourced preparation marker
//   - Visibility: The per-item role allow-list applied to every read
//
// Key business rules:
//   - Exactly one department holds an item at a time; currentDepartment is
//     non-nil iff the status is checked_in or in_progress
//   - A check-in into the department that already holds the item is rejected;
//     a check-in into another department moves the item without an explicit checkout
//   - After a checkout, the next check-in must go to the promised handover department
//   - Fine-grained sub-status moves must follow the stage catalog's transition
//     graph, except for the explicit return-to-stage rework escape hatch
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package item
