package models

// Quote is a motivational quote from the upstream API or the fallback table.
type Quote struct {
	Text            string   `json:"text"`
	Author          string   `json:"author"`
	Tags            []string `json:"tags,omitempty"`
	Length          int      `json:"length,omitempty"`
	ID              string   `json:"id,omitempty"`
	Timestamp       int64    `json:"timestamp"`
	IsFallback      bool     `json:"isFallback,omitempty"`
	IsQuoteOfTheDay bool     `json:"isQuoteOfTheDay,omitempty"`
}
