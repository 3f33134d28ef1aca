package model

import "fmt"

// AuditLogRecord is a raw audit log entry as stored by the collector: an
// open-ended key/value document with no fixed schema. The mapper must treat
// every field as potentially missing or malformed.
type AuditLogRecord map[string]any

// LogID returns the record's identifier, preferring "_id" over "id".
// Returns "" when neither is present.
func (r AuditLogRecord) LogID() string {
	for _, key := range []string{"_id", "id"} {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}
