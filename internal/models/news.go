package models

// NewsItem is one AI-summarised headline
type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
	Date    string `json:"date"`
	URL     string `json:"url,omitempty"`
}

// NewsCache is the last successful news fetch. Disposable.
type NewsCache struct {
	Items []NewsItem `json:"items"`
	Date  string     `json:"date"` // RFC3339 fetch time
}
