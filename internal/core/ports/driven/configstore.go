package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice configuration value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Well-known configuration keys.
const (
	// ConfigKeyMaxDocuments caps how many library documents one query loads.
	ConfigKeyMaxDocuments = "library.max_documents"

	// ConfigKeyMaxDocumentChars caps characters read per library document.
	ConfigKeyMaxDocumentChars = "library.max_document_chars"

	// ConfigKeyExclusionsFile locates the exclusion rule document.
	ConfigKeyExclusionsFile = "library.exclusions_file"

	// ConfigKeyModelProvider selects the model backend ("ollama", "anthropic").
	ConfigKeyModelProvider = "model.provider"

	// ConfigKeyModelBaseURL overrides the model backend base URL.
	ConfigKeyModelBaseURL = "model.base_url"

	// ConfigKeyModelName selects the model.
	ConfigKeyModelName = "model.model"

	// ConfigKeyModelAPIKey holds the model backend API key, when required.
	ConfigKeyModelAPIKey = "model.api_key"

	// ConfigKeySearchBaseURL locates the SearXNG instance for web search.
	ConfigKeySearchBaseURL = "search.base_url"

	// ConfigKeyStorageBackend selects domain/pattern storage ("sqlite", "memory").
	ConfigKeyStorageBackend = "storage.backend"
)
