package server

import "pkg.jsn.cam/regfake/pkg/regfake"

// GenerateRequest is the body of POST /api/records.
type GenerateRequest struct {
	Type      string   `json:"type"`
	Modifiers []string `json:"modifiers,omitempty"`
	Count     int      `json:"count,omitempty"`
}

// GenerateResponse carries the generated records in request order.
type GenerateResponse struct {
	RequestID string            `json:"request_id"`
	Type      string            `json:"type"`
	Records   []*regfake.Record `json:"records"`
}

// TemplateInfo describes one record type.
type TemplateInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
	Defaults    []string `json:"defaults"`
}

// TemplateListResponse lists the record types by name.
type TemplateListResponse struct {
	Templates []TemplateInfo `json:"templates"`
}

// PlateFormatListResponse lists the plate formats by country code.
type PlateFormatListResponse struct {
	Formats []regfake.PlateFormat `json:"formats"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Templates int    `json:"templates"`
}

func templateInfo(t regfake.Template) TemplateInfo {
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = string(f)
	}
	defaults := t.Defaults.Slice()
	if defaults == nil {
		defaults = []string{}
	}
	return TemplateInfo{
		Name:        t.Name,
		Description: t.Description,
		Fields:      fields,
		Defaults:    defaults,
	}
}
