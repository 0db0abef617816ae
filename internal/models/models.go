package models

// TrainingInfo holds the training details read from an attendance sheet.
// Fields stay empty when they are not visible on the sheet.
type TrainingInfo struct {
	Title    string `json:"titel"`
	Date     string `json:"datum"`
	Location string `json:"locatie"`
	Trainer  string `json:"trainer"`
}

// Attendee is one row on an attendance sheet.
type Attendee struct {
	Name    string `json:"naam"`
	Company string `json:"bedrijf"`
	Email   string `json:"email"`
	Present bool   `json:"aanwezig"`
	Signed  bool   `json:"handtekening"`
}

// ExtractionRecord is the JSON shape the vision model is instructed to return
// for a single sheet image. The merged batch result uses the same shape.
type ExtractionRecord struct {
	TrainingInfo TrainingInfo `json:"training_info"`
	Attendees    []Attendee   `json:"deelnemers"`
}

// Summary gives the headline numbers for a scanned batch.
type Summary struct {
	Total    int    `json:"totaal"`
	Present  int    `json:"aanwezig"`
	Training string `json:"training"`
}

// Metadata reports how the batch was processed.
type Metadata struct {
	TotalImages     int `json:"totalImages"`
	ProcessedImages int `json:"processedImages"`
	TotalContacts   int `json:"totalContacts"`
	UniqueContacts  int `json:"uniqueContacts"`
	PDFPages        int `json:"pdfPages"`
}

// ScanResponse is the /api/scan success payload.
type ScanResponse struct {
	Success  bool             `json:"success"`
	Data     ExtractionRecord `json:"data"`
	CSV      string           `json:"csv"`
	PDF      string           `json:"pdf"`
	Summary  Summary          `json:"summary"`
	Metadata Metadata         `json:"metadata"`
}

// Contact is a mail recipient for scanned attendance lists.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
