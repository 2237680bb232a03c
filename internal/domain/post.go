package domain

// readingLengthDivisor converts body length in characters to the read-time
// estimate the feed displays.
const readingLengthDivisor = 863.0

// Post represents a blog post without persistence concerns.
type Post struct {
	ID                     string  `json:"id"`
	Title                  string  `json:"title"`
	Content                string  `json:"content"`
	Views                  int     `json:"views"`
	EstimatedReadingLength float64 `json:"estimatedReadingLength"`
	CreatedAt              int64   `json:"createdAt"`
	UpdatedAt              *int64  `json:"updatedAt"`
}

// EstimateReadingLength derives the read-time estimate from the current body
// text. The estimate is never stored; it is recomputed on every read.
func EstimateReadingLength(content string) float64 {
	return float64(len(content)) / readingLengthDivisor
}
