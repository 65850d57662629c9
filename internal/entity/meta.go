package entity

// MetaField is one best-effort extracted identifier. Context carries the
// raw matched text so a reviewer can judge whether the match is spurious;
// extraction itself never validates plausibility.
type MetaField struct {
	Value   string `json:"value"`
	Context string `json:"context,omitempty"`
}

// RfpMeta holds project/client/venue identifiers pulled from the full
// document text. Each field is nil when no pattern matched.
type RfpMeta struct {
	ClientName   *MetaField `json:"client_name,omitempty"`
	VenueName    *MetaField `json:"venue_name,omitempty"`
	ProjectTitle *MetaField `json:"project_title,omitempty"`
}

func fieldValue(f *MetaField) string {
	if f == nil {
		return ""
	}
	return f.Value
}

func (m RfpMeta) Client() string  { return fieldValue(m.ClientName) }
func (m RfpMeta) Venue() string   { return fieldValue(m.VenueName) }
func (m RfpMeta) Project() string { return fieldValue(m.ProjectTitle) }
