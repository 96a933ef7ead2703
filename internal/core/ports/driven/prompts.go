package driven

// PromptStore provides access to model prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptAnswerSystem is the system prompt for answering queries.
	// This prompt has no format placeholders.
	PromptAnswerSystem = "answer_system"

	// PromptLibraryContext frames loaded library documents as context.
	// The prompt template expects a %s placeholder for the documents.
	PromptLibraryContext = "library_context"

	// PromptSearchContext frames web search results as context.
	// The prompt template expects a %s placeholder for the results.
	PromptSearchContext = "search_context"
)
