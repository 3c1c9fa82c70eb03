// Package writers turns scored queries into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV rows, JSON/JSONL).
//   - Scoring stays domain-only; the pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
