package types

// ValuePayload carries one named numeric array across the HTTP boundary.
// Shape may be omitted for vectors; the server then treats the data as a
// one-dimensional array of len(data).
type ValuePayload struct {
	Shape []int     `json:"shape,omitempty"`
	Data  []float64 `json:"data"`
}

// EvalRequest is the payload for density evaluation endpoints
// (/eval/logprob, /eval/loglik, /eval/predict).
type EvalRequest struct {
	// Optional model identifier. If empty, the server default is used.
	Model string `json:"model,omitempty"`
	// Observed-data binding, keyed by data variable name.
	Data map[string]ValuePayload `json:"data,omitempty"`
	// Latent-variable binding, keyed by latent name.
	Latents map[string]ValuePayload `json:"latents,omitempty"`
}

// EvalResponse is returned by the scalar density endpoints.
type EvalResponse struct {
	Model string  `json:"model"`
	Value float64 `json:"value"`
}

// BindingResponse is returned by endpoints that produce a variable binding
// (predictions and samples).
type BindingResponse struct {
	Model  string                  `json:"model"`
	Values map[string]ValuePayload `json:"values"`
}

// SampleRequest is the payload for the sampling endpoints. Latents is
// required for /sample/likelihood and ignored by /sample/prior.
type SampleRequest struct {
	Model   string                  `json:"model,omitempty"`
	Latents map[string]ValuePayload `json:"latents,omitempty"`
}

// CapabilitiesResponse reports the probed capability set of one model.
type CapabilitiesResponse struct {
	Model        string   `json:"model"`
	Capabilities []string `json:"capabilities"`
}

// ValidateRequest asks the server to run the configuration-time checks for
// an inference plan against a registered model. Latent carries the
// single-name spec form; Latents carries the list form. Supplying both is
// rejected.
type ValidateRequest struct {
	Model     string   `json:"model,omitempty"`
	Strategy  string   `json:"strategy"`
	Latent    string   `json:"latent,omitempty"`
	Latents   []string `json:"latents,omitempty"`
	Subsample bool     `json:"subsample,omitempty"`
}

// ValidateResponse is returned when a plan passes validation.
type ValidateResponse struct {
	Model string `json:"model"`
	OK    bool   `json:"ok"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// InstanceStatus summarizes one registered model for /status.
type InstanceStatus struct {
	ModelID string `json:"model_id"`
	// Last time this instance served a call (unix seconds).
	LastUsed int64 `json:"last_used_unix"`
	// Current queue length for incoming calls.
	QueueLen int `json:"queue_len"`
	// In-flight calls currently being evaluated (0 or 1).
	Inflight int `json:"inflight"`
	// Maximum queued calls allowed before backpressure triggers.
	MaxQueueDepth int `json:"max_queue_depth"`
	// Total completed evaluations on this instance.
	EvalsTotal uint64 `json:"evals_total"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Instances      []InstanceStatus `json:"instances"`
	DefaultModel   string           `json:"default_model,omitempty"`
	Error          string           `json:"error,omitempty"`
	UptimeSeconds  int64            `json:"uptime_seconds"`
	ServerTimeUnix int64            `json:"server_time_unix"`
	EvalsTotal     uint64           `json:"evals_total"`
}
