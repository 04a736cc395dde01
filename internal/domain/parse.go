package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate holds the compiled struct validation rules. validator instances
// cache their tag parsing, so one shared instance is the intended usage.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseForcingMessage deserializes and validates a source-topic payload.
// Structural problems (bad JSON, unknown model kind, out-of-range parameter
// overrides) are errors; missing variables are not, they resolve to defaults
// at compute time.
func ParseForcingMessage(value []byte) (ForcingMessage, error) {
	var msg ForcingMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return ForcingMessage{}, fmt.Errorf("parse forcing message: %w", err)
	}
	if err := validate.Struct(msg); err != nil {
		return ForcingMessage{}, fmt.Errorf("validate forcing message: %w", err)
	}
	return msg, nil
}

// SerializeResult marshals a ResultEvent into an OutputEvent for the sink
// topic. The model and processing time ride along as headers so consumers
// can route without deserializing the body.
func SerializeResult(result ResultEvent) (OutputEvent, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize result event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(result.ID),
		Value: data,
		Headers: map[string]string{
			"model":        string(result.Model),
			"processed_at": result.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
