package converter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gubarz/adfmd/internal/adf"
)

// Envelope pairs a document with its page metadata, the shape page APIs
// exchange: the ADF tree under "body" and front-matter under "metadata".
type Envelope struct {
	Body     *adf.Document `json:"body"`
	Metadata Metadata      `json:"metadata,omitempty"`
}

// DecodeDocument accepts either a bare ADF document or an Envelope.
func DecodeDocument(data []byte) (*adf.Document, Metadata, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, ErrEmptyInput
	}

	var probe struct {
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("decode adf: %w", err)
	}

	if len(probe.Body) > 0 {
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, nil, fmt.Errorf("decode envelope: %w", err)
		}
		if env.Body == nil {
			return nil, nil, fmt.Errorf("decode envelope: %w", adf.ErrNotDocument)
		}
		return env.Body, env.Metadata, nil
	}

	var doc adf.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	return &doc, nil, nil
}
