package llm

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged entry in a completion request.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest carries the parameters of one generation call. JSONMode
// asks the backend to constrain output to a JSON object; backends without
// native support ignore it and rely on the prompt.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// CompletionResponse is the result of a generation call, including token
// accounting where the backend reports it.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
