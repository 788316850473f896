package request

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/url"
	"slices"
	"strings"
)

var (
	TicketAliases = []string{"ticket_id", "ticket", "barcode"}
	DeviceAliases = []string{"ranger_id", "device_id", "scanner_id", "ranger", "device"}
)

// Scan is a scan payload after alias resolution. Both fields may be blank.
type Scan struct {
	TicketID string
	DeviceID string
}

// ParseScan reads a scan from a JSON object, a form body, or a raw barcode
// string. Devices disagree on the format, so the content type is only a hint.
func ParseScan(contentType string, body []byte) Scan {
	fields, ok := structuredFields(contentType, body)
	if !ok {
		return Scan{TicketID: strings.TrimSpace(string(body))}
	}

	return Scan{
		TicketID: firstValue(fields, TicketAliases),
		DeviceID: firstValue(fields, DeviceAliases),
	}
}

// FromValues resolves aliases over an already parsed form, such as a
// multipart body. Only the first value of each key counts.
func FromValues(values map[string][]string) Scan {
	fields := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}

	return Scan{
		TicketID: firstValue(fields, TicketAliases),
		DeviceID: firstValue(fields, DeviceAliases),
	}
}

func IsMultipart(contentType string) bool {
	mediaType, _, _ := mime.ParseMediaType(contentType)

	return mediaType == "multipart/form-data"
}

func structuredFields(contentType string, body []byte) (map[string]string, bool) {
	mediaType, _, _ := mime.ParseMediaType(contentType)

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return jsonFields(body)
	case mediaType == "application/x-www-form-urlencoded":
		return formFields(body)
	default:
		return nil, false
	}
}

func jsonFields(body []byte) (map[string]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}

	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		switch t := v.(type) {
		case string:
			fields[k] = t
		case json.Number:
			fields[k] = t.String()
		}
	}

	return fields, true
}

// formFields rejects a form whose keys all lack values, unless one of them
// is a known field: "ABC123" is a bare barcode posted with curl -d,
// "ticket_id=" is an empty form. Pairs with a bad escape are skipped.
func formFields(body []byte) (map[string]string, bool) {
	// ParseQuery keeps every pair it could decode alongside the first error.
	values, _ := url.ParseQuery(string(body))

	fields := make(map[string]string, len(values))
	structured := false
	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		fields[k] = vs[0]
		if vs[0] != "" || isAlias(k) {
			structured = true
		}
	}

	return fields, structured
}

func isAlias(key string) bool {
	return slices.Contains(TicketAliases, key) || slices.Contains(DeviceAliases, key)
}

func firstValue(fields map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(fields[alias]); v != "" {
			return v
		}
	}

	return ""
}
