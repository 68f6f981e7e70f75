package core

import "time"

// Article represents the content fetched and extracted from a single page.
type Article struct {
	URL         string    `json:"url"`          // Normalized URL the page was fetched from
	Title       string    `json:"title"`        // Best-effort page title (may be empty)
	CleanedText string    `json:"cleaned_text"` // Whitespace-normalized visible text
	DateFetched time.Time `json:"date_fetched"` // Timestamp when the page was fetched
}

// Summary represents a generated summary of one article.
type Summary struct {
	ID            string    `json:"id"`             // Unique identifier for the summary
	URL           string    `json:"url"`            // Source URL of the summarized article
	Title         string    `json:"title"`          // Title of the source article
	Style         string    `json:"style"`          // Summary style name (general, article, ...)
	SummaryText   string    `json:"summary_text"`   // The generated summary text, verbatim
	ModelUsed     string    `json:"model_used"`     // LLM model used for summarization
	Truncated     bool      `json:"truncated"`      // Whether the input text was cut before prompting
	DateGenerated time.Time `json:"date_generated"` // Timestamp when the summary was generated
}

// DisplayTitle returns the article title, falling back to the URL.
func (s Summary) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.URL
}
