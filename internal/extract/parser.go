package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/thehouseofcoaching/awl-scanner/internal/models"
)

var (
	// ErrNoJSONFound means the model reply contained no brace span at all.
	ErrNoJSONFound = errors.New("no JSON object found in model response")

	// ErrMalformedJSON means a brace span was found but did not parse.
	ErrMalformedJSON = errors.New("malformed JSON in model response")
)

// Parse locates the JSON object in a free-text model reply and decodes it
// into an ExtractionRecord. The span runs greedily from the first '{' to the
// last '}', which tolerates prose before and after the object. Parsing the
// same text twice yields identical records.
func Parse(text string) (*models.ExtractionRecord, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return nil, ErrNoJSONFound
	}

	var record models.ExtractionRecord
	if err := json.Unmarshal([]byte(text[start:end+1]), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	return &record, nil
}
