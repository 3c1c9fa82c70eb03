// internal/output/json.go
package output

import (
	"io"

	"alienness/internal/alien"
	"alienness/internal/jsonutil"
	"alienness/pkg/api"
)

// ToAPIScore converts a result to the stable wire schema (v1).
func ToAPIScore(r alien.Result) api.ScoreV1 {
	s := r.Score
	v := api.ScoreV1{
		QueryID:             r.Query,
		BestDonorEValue:     s.BestDonor,
		BestRecipientEValue: s.BestRecipient,
		DonorHits:           s.Count(alien.Donor),
		OtherHits:           s.Count(alien.Other),
		ExcludedHits:        s.Count(alien.Excluded),
		IgnoredHits:         s.Count(alien.Ignored),
	}
	if s.Valid {
		ai := s.Value
		v.AI = &ai
	}
	return v
}

func toAPIScores(list []alien.Result) []api.ScoreV1 {
	out := make([]api.ScoreV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIScore(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 scores (pretty-indented).
func WriteJSON(w io.Writer, list []alien.Result) error {
	return jsonutil.EncodePretty(w, toAPIScores(list))
}
