package output

// TSVHeader is the canonical header row for text/TSV outputs.
const TSVHeader = "query_id\tAI"

// NA is written in place of a score when no evidence qualified.
const NA = "NA"
