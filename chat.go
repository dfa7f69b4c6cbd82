package siterag

// Chat roles for ChatTurn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single prior exchange in a conversation. The caller owns the
// history and passes a bounded recent window of it into the query path; the
// core never persists turns.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Source identifies a stored chunk that grounded an answer.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// RetrievalResult is the outcome of answering a question: the final answer
// text and the ordered list of sources it was grounded in. Sources are empty
// whenever retrieval found nothing.
type RetrievalResult struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
