package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskStandardizeDates TaskType = "standardize_dates"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig configures the Ollama backend. Env and YAML tags are read by the
// config package through cleanenv.
type LLMConfig struct {
	Endpoint   string `yaml:"endpoint" env:"ENDPOINT" env-default:"http://localhost:11434"`
	Model      string `yaml:"model" env:"MODEL" env-default:"llama3.2"`
	TimeoutMs  int    `yaml:"timeout_ms" env:"TIMEOUT_MS" env-default:"20000"`
	MaxRetries int    `yaml:"max_retries" env:"MAX_RETRIES" env-default:"1"`

	Tasks map[TaskType]TaskConfig `yaml:"-"`
}

// GeminiConfig configures the hosted Gemini backend.
type GeminiConfig struct {
	APIKey    string `yaml:"-" env:"API_KEY"`
	Model     string `yaml:"model" env:"MODEL" env-default:"gemini-2.0-flash"`
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`
	TimeoutMs int    `yaml:"timeout_ms" env:"TIMEOUT_MS" env-default:"20000"`
}

// DefaultTasks returns the built-in per-task parameters.
func DefaultTasks() map[TaskType]TaskConfig {
	return map[TaskType]TaskConfig{
		TaskStandardizeDates: {Temperature: 0, MaxTokens: 2048},
	}
}

// DefaultConfig returns an LLMConfig matching the env defaults.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  20000,
		MaxRetries: 1,
		Tasks:      DefaultTasks(),
	}
}

// DefaultGeminiConfig returns a GeminiConfig without credentials.
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		Model:     "gemini-2.0-flash",
		TimeoutMs: 20000,
	}
}

// Task returns the parameters for task, falling back to the defaults when
// the config carries none.
func (c LLMConfig) Task(task TaskType) TaskConfig {
	if tc, ok := c.Tasks[task]; ok {
		return tc
	}
	return DefaultTasks()[task]
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc := c.Task(task); tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
