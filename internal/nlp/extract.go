package nlp

import (
	"regexp"
	"strings"
)

// Field names, in the column order of the extracted-fields workbook.
const (
	FieldCAS                = "CAS"
	FieldBrandName          = "Brand Name"
	FieldCompany            = "Company"
	FieldContactPerson      = "Contact Person"
	FieldProductDescription = "Product Description"
)

// FieldNames lists every extracted field in output order.
var FieldNames = []string{FieldCAS, FieldBrandName, FieldCompany, FieldContactPerson, FieldProductDescription}

var fieldPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{FieldCAS, regexp.MustCompile(`Model No\.?\s*:?\s*(\S+)`)},
	{FieldBrandName, regexp.MustCompile(`Brand Name\s*:?\s*(.+?)(?:\n|$)`)},
	{FieldCompany, regexp.MustCompile(`Company\s*:?\s*(.+?)(?:\n|$)`)},
	{FieldContactPerson, regexp.MustCompile(`Contact Person\s*:?\s*(.+?)(?:\n|$)`)},
	{FieldProductDescription, regexp.MustCompile(`(?s)Product Description(.*?)Contact`)},
}

// Fields maps field name to value for the fields found in one cell. A
// missing key means the pattern did not match.
type Fields map[string]string

// Extract normalizes text and pulls out the known trade-listing fields.
// Values are trimmed; an optional ':' after the label is skipped. Fields
// whose value trims to nothing are left out.
func Extract(text string) Fields {
	fields := Fields{}
	normalized := Normalize(text)
	if normalized == "" {
		return fields
	}

	for _, p := range fieldPatterns {
		m := p.re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(m[1]), ":")); v != "" {
			fields[p.name] = v
		}
	}
	return fields
}

// Row returns the field values in FieldNames order, empty for missing ones.
func (f Fields) Row() []string {
	row := make([]string, len(FieldNames))
	for i, name := range FieldNames {
		row[i] = f[name]
	}
	return row
}
