package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// EstimateSystemPrompt frames every generation call. The hard
	// candidate and schema constraints are appended per request by the
	// prompt builder.
	EstimateSystemPrompt = `You are a PC build advisor. You assemble complete PC part estimates strictly from the candidate products you are given. You never invent product names, prices or links. When the candidates cannot satisfy the request, you say so in plain text instead of guessing.`

	// EmbeddingTaskQuery and EmbeddingTaskDocument are the task types
	// passed to the embedding provider.
	EmbeddingTaskQuery    = "RETRIEVAL_QUERY"
	EmbeddingTaskDocument = "RETRIEVAL_DOCUMENT"
)
