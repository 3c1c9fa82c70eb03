// Package pipeline scores every query of a hit table and hands results to an
// emit callback in first-encounter order.
//
// The only contract to implement is Scorer. This keeps the pipeline swappable
// and testable.
package pipeline
