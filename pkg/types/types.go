package types

// Model represents a registered probabilistic model the engine can drive.
type Model struct {
	// Stable identifier for the model.
	ID string `json:"id"`
	// Human-friendly name.
	Name string `json:"name"`
	// Absolute path to the program file backing the model, when file-backed.
	Path string `json:"path,omitempty"`
	// Origin of the model: "program" for compiled program files,
	// "native" or "numeric" for in-process registrations.
	Source string `json:"source,omitempty"`
	// Optional capabilities reported by the probe at registration time.
	Capabilities []string `json:"capabilities,omitempty"`
}
