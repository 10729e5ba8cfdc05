package types

// Mention represents one mention of the bot on the platform.
type Mention struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	AuthorID       string `json:"author_id,omitempty"`
	AuthorUsername string `json:"author_username,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// Thread is the fixed three-tweet shape every agent answer is carved into.
// Missing tweets are empty strings, never absent.
type Thread struct {
	Tweet1 string `json:"tweet1"`
	Tweet2 string `json:"tweet2"`
	Tweet3 string `json:"tweet3"`
}

// Segments returns the tweets in posting order.
func (t Thread) Segments() [3]string {
	return [3]string{t.Tweet1, t.Tweet2, t.Tweet3}
}

// Empty reports whether every segment is an empty string.
func (t Thread) Empty() bool {
	return t.Tweet1 == "" && t.Tweet2 == "" && t.Tweet3 == ""
}

// MentionsPayload is the body the /mentions webhook receives.
type MentionsPayload struct {
	Count    int            `json:"count"`
	Mentions []Mention      `json:"mentions"`
	Meta     map[string]any `json:"meta,omitempty"`
}
