// internal/alien/score.go
package alien

import (
	"math"
	"strconv"

	"alienness/internal/blast"
	"alienness/internal/taxonomy"
)

// Default lineages.
const (
	DefaultDonor    taxonomy.TaxID = 33208 // Metazoa
	DefaultExcluded taxonomy.TaxID = 10190 // Rotifera
)

// noEvidence is the starting best e-value on both sides.
const noEvidence = 1.0

// Epsilon keeps ln finite for e-values of exactly zero.
var Epsilon = math.Exp(-200)

// Lineage answers ancestor-membership questions (taxonomy.Index).
type Lineage interface {
	IsDescendantOf(id, ancestor taxonomy.TaxID) bool
}

// Membership answers allow-list questions (taxonomy.IDSet).
type Membership interface {
	Contains(id taxonomy.TaxID) bool
}

// Params names the two lineages a query is scored against.
type Params struct {
	Donor    taxonomy.TaxID
	Excluded taxonomy.TaxID
}

// DefaultParams returns the Metazoa / Rotifera pair.
func DefaultParams() Params {
	return Params{Donor: DefaultDonor, Excluded: DefaultExcluded}
}

// Class is the role a single hit plays in the score.
type Class int

const (
	Ignored  Class = iota // taxon not in the significant set
	Excluded              // inside the excluded lineage
	Donor                 // inside the donor lineage; feeds the recipient side
	Other                 // everything else; feeds the donor side
)

func (c Class) String() string {
	switch c {
	case Ignored:
		return "ignored"
	case Excluded:
		return "excluded"
	case Donor:
		return "donor"
	case Other:
		return "other"
	}
	return "Class(" + strconv.Itoa(int(c)) + ")"
}

// Classify places one hit. Significance is checked first, then exclusion,
// then donor membership.
func Classify(h blast.Hit, tax Lineage, p Params, sig Membership) Class {
	switch {
	case !sig.Contains(h.TaxID):
		return Ignored
	case tax.IsDescendantOf(h.TaxID, p.Excluded):
		return Excluded
	case tax.IsDescendantOf(h.TaxID, p.Donor):
		return Donor
	default:
		return Other
	}
}

// Score is the result for one query.
type Score struct {
	Value float64 // rounded to 2 decimals; meaningless when !Valid
	Valid bool    // false means NA

	BestDonor     float64 // best e-value outside the donor lineage
	BestRecipient float64 // best e-value inside the donor lineage

	Counts [4]int // hits per Class
}

// NA reports whether no evidence qualified.
func (s Score) NA() bool { return !s.Valid }

// Count returns how many hits fell into c.
func (s Score) Count(c Class) int { return s.Counts[c] }

// Compute reduces hits to a Score. The result depends only on the set of
// hits, not their order.
func Compute(hits []blast.Hit, tax Lineage, p Params, sig Membership) Score {
	s := Score{BestDonor: noEvidence, BestRecipient: noEvidence}
	for _, h := range hits {
		c := Classify(h, tax, p, sig)
		s.Counts[c]++
		switch c {
		case Donor:
			s.BestRecipient = math.Min(s.BestRecipient, h.EValue)
		case Other:
			s.BestDonor = math.Min(s.BestDonor, h.EValue)
		}
	}
	if s.BestDonor == noEvidence && s.BestRecipient == noEvidence {
		return s
	}
	s.Value = Round2(math.Log(s.BestRecipient+Epsilon) - math.Log(s.BestDonor+Epsilon))
	s.Valid = true
	return s
}

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	r := math.Round(x*100) / 100
	if r == 0 {
		return 0 // drop the sign of -0
	}
	return r
}

// Scorer binds the shared, read-only inputs so that per-query scoring only
// needs the hits.
type Scorer struct {
	Tax    Lineage
	Sig    Membership
	Params Params
}

// Score computes the index for one query's hits.
func (sc Scorer) Score(hits []blast.Hit) Score {
	return Compute(hits, sc.Tax, sc.Params, sc.Sig)
}

// Result pairs a query id with its score.
type Result struct {
	Query string
	Score Score
}
