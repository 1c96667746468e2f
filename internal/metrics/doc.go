// Package metrics provides prometheus registration helpers and the storage
// metrics hook. All rolo metrics share the "rolo" namespace with a per-feature
// subsystem.
package metrics
