package vision

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Extractor sends one normalized scan image to a vision-capable model and
// returns its free-text reply. Implementations make a single attempt; the
// batch layer decides what a failure means.
type Extractor interface {
	Extract(ctx context.Context, jpegData []byte) (string, error)
}

// scanPrompt instructs the model to read an attendance sheet and reply with
// one JSON object. Kept in Dutch: the sheets and the downstream consumers are.
const scanPrompt = `Je bent een OCR-specialist. Analyseer deze aanwezigheidslijst (attendance list) en extraheer alle gegevens.

Geef het resultaat EXACT in dit JSON formaat:
{
  "training_info": {
    "titel": "naam van de training/cursus",
    "datum": "datum van de training",
    "locatie": "locatie indien zichtbaar",
    "trainer": "naam trainer indien zichtbaar"
  },
  "deelnemers": [
    {
      "naam": "volledige naam",
      "bedrijf": "bedrijf indien zichtbaar",
      "email": "email indien zichtbaar",
      "aanwezig": true of false,
      "handtekening": true of false
    }
  ]
}

Regels:
- "aanwezig" is true als er een handtekening, vinkje of andere markering staat
- "handtekening" is true als er daadwerkelijk een handtekening zichtbaar is
- Laat velden leeg ("") als de info niet zichtbaar is
- Geef ALLEEN valid JSON terug, geen andere tekst`

// Gemini extracts attendance data with Google Gemini vision models.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini returns a Gemini extractor for the given API key and model name.
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

// Extract sends the scan prompt plus one inlined JPEG to Gemini and returns
// the raw text reply. Temperature is pinned to zero; output is still not
// guaranteed deterministic.
func (g *Gemini) Extract(ctx context.Context, jpegData []byte) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx, genai.Text(scanPrompt), genai.ImageData("jpeg", jpegData))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format from Gemini")
}
