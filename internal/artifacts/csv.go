package artifacts

import (
	"strings"

	"github.com/thehouseofcoaching/awl-scanner/internal/models"
)

const csvHeader = "Naam,Bedrijf,Email,Aanwezig,Handtekening"

// BuildCSV renders the attendee list in the legacy export format: a fixed
// Dutch header, every field wrapped in double quotes and booleans rendered as
// Ja/Nee. An empty attendee list yields the header row only. encoding/csv is
// deliberately not used here: it only quotes when required, while downstream
// consumers of this export expect every field quoted.
func BuildCSV(attendees []models.Attendee) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, a := range attendees {
		b.WriteByte('\n')
		b.WriteString(`"` + a.Name + `","` + a.Company + `","` + a.Email + `","` +
			jaNee(a.Present) + `","` + jaNee(a.Signed) + `"`)
	}
	return b.String()
}

func jaNee(v bool) string {
	if v {
		return "Ja"
	}
	return "Nee"
}
