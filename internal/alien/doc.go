// Package alien computes the Alienness Index of a query from its hits.
//
// For every significant hit outside the excluded lineage, hits inside the
// donor lineage feed the recipient-side best e-value and all other hits feed
// the donor-side best e-value. The index is
//
//	AI = ln(bestRecipient + ε) − ln(bestDonor + ε),   ε = e^−200
//
// rounded to two decimals. When neither side saw evidence the score is NA.
// Compute is pure: it never mutates its inputs and performs no I/O.
package alien
