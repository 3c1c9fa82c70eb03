// pkg/api/scores_v1.go
package api

// ScoreV1 is the stable JSON/JSONL schema for one scored query.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ScoreV1 struct {
	QueryID             string   `json:"query_id"`
	AI                  *float64 `json:"ai"` // null when no evidence qualified
	BestDonorEValue     float64  `json:"best_donor_evalue"`
	BestRecipientEValue float64  `json:"best_recipient_evalue"`
	DonorHits           int      `json:"donor_hits"`
	OtherHits           int      `json:"other_hits"`
	ExcludedHits        int      `json:"excluded_hits"`
	IgnoredHits         int      `json:"ignored_hits"`
}
