package llm

// Option applies a configuration option to the OpenAI client.
type Option func(*OpenAI)

// WithAPIKey overrides the environment-supplied API key.
func WithAPIKey(key string) Option {
	return func(o *OpenAI) {
		if key != "" {
			o.apiKey = key
		}
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests
// and by proxy deployments.
func WithBaseURL(url string) Option {
	return func(o *OpenAI) {
		o.baseURL = url
	}
}

// WithModel selects the completion model.
func WithModel(model string) Option {
	return func(o *OpenAI) {
		if model != "" {
			o.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *OpenAI) {
		if t >= 0 {
			o.temperature = float32(t)
		}
	}
}

// WithMaxTokens bounds the completion length.
func WithMaxTokens(n int) Option {
	return func(o *OpenAI) {
		if n > 0 {
			o.maxTokens = n
		}
	}
}
