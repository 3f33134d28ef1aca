package service

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
)

// Region labels produced by the IP classifier. The prefix table below is an
// admitted simplification carried over from the training pipeline, not a
// geolocation lookup; production deployments swap in a geo-IP resolver
// behind the same mapper contract.
const (
	regionVietnam = "Vietnam"
	regionNigeria = "Nigeria"
	regionUS      = "US"
)

// Defaults used when an audit log field is absent or unparseable.
const (
	defaultHour          = 12
	defaultSessionPeriod = 15
)

// Roles treated as employees; everything else maps to guest.
var employeeRoles = map[string]struct{}{
	"admin":    {},
	"employee": {},
	"manager":  {},
	"user":     {},
}

// AuditLogMapper derives the six model features from a raw audit log record.
// Every field has a defined default, so missing data never fails a mapping;
// only a structurally malformed record (e.g. a roles list holding
// non-strings) is reported as unmappable.
type AuditLogMapper struct {
	logger *slog.Logger
}

// NewAuditLogMapper creates an AuditLogMapper.
func NewAuditLogMapper(logger *slog.Logger) *AuditLogMapper {
	return &AuditLogMapper{logger: logger}
}

// Map converts an audit log record into model features. The second return
// value is false when the record is unmappable; in that case the input must
// not be used.
func (m *AuditLogMapper) Map(rec model.AuditLogRecord) (model.PredictionInput, bool) {
	ipAddress, ok := m.ipAddress(rec)
	if !ok {
		return model.PredictionInput{}, false
	}

	role, ok := m.userRole(rec["roles"])
	if !ok {
		return model.PredictionInput{}, false
	}

	action, ok := m.action(rec["action"])
	if !ok {
		return model.PredictionInput{}, false
	}

	session, ok := m.sessionPeriod(rec["sessionPeriod"])
	if !ok {
		return model.PredictionInput{}, false
	}

	return model.PredictionInput{
		IPRegion:      m.ipRegion(ipAddress),
		DeviceType:    m.deviceType(rec),
		UserRole:      role,
		Action:        action,
		Hour:          m.hour(rec["timestamp"]),
		SessionPeriod: session,
	}, true
}

// hour extracts the hour of day from the record's timestamp, defaulting to
// midday when the field is absent or unparseable.
func (m *AuditLogMapper) hour(raw any) int {
	switch ts := raw.(type) {
	case time.Time:
		return ts.Hour()
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, ts); err == nil {
				return t.Hour()
			}
		}
		m.logger.Debug("unparseable timestamp in audit log, using default hour",
			slog.String("timestamp", ts),
		)
	}
	return defaultHour
}

// ipAddress reads the record's IP field under either naming convention. A
// present but non-string value marks the record unmappable.
func (m *AuditLogMapper) ipAddress(rec model.AuditLogRecord) (string, bool) {
	for _, key := range []string{"ipAddress", "ip_address"} {
		v, present := rec[key]
		if !present || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			m.logger.Warn("audit log has non-string IP address field",
				slog.String("field", key),
			)
			return "", false
		}
		if s != "" {
			return s, true
		}
	}
	return "", true
}

// ipRegion classifies an IP address into a coarse region by prefix.
// Loopback, private, and unrecognized addresses all take the default region.
func (m *AuditLogMapper) ipRegion(ip string) string {
	if ip == "" || ip == "127.0.0.1" || strings.HasPrefix(ip, "192.168") {
		return regionVietnam
	}

	switch {
	case strings.HasPrefix(ip, "103."):
		return regionVietnam
	case strings.HasPrefix(ip, "41."):
		return regionNigeria
	case strings.HasPrefix(ip, "52."), strings.HasPrefix(ip, "54."):
		return regionUS
	default:
		return regionVietnam
	}
}

// deviceType is "known" when any user agent is present, "new" otherwise.
// A coarse heuristic, not device fingerprinting.
func (m *AuditLogMapper) deviceType(rec model.AuditLogRecord) string {
	for _, key := range []string{"userAgent", "user_agent"} {
		switch v := rec[key].(type) {
		case string:
			if v != "" {
				return "known"
			}
		case nil:
		default:
			// Any non-empty value counts as a user agent being present.
			return "known"
		}
	}
	return "new"
}

// userRole maps the first entry of the roles list into the model's role
// vocabulary. Absent or non-list roles default to guest; a list whose first
// entry is not a string marks the record unmappable.
func (m *AuditLogMapper) userRole(raw any) (string, bool) {
	roles, ok := rawToSlice(raw)
	if !ok || len(roles) == 0 {
		return "guest", true
	}

	first, ok := roles[0].(string)
	if !ok {
		m.logger.Warn("audit log roles list holds a non-string entry")
		return "", false
	}

	if _, known := employeeRoles[strings.ToLower(first)]; known {
		return "employee", true
	}
	return "guest", true
}

// action classifies the raw action string into the model's action
// vocabulary via substring containment. The precedence order matters: an
// action matching several rules takes the first listed.
func (m *AuditLogMapper) action(raw any) (string, bool) {
	var action string
	switch v := raw.(type) {
	case nil:
	case string:
		action = v
	default:
		m.logger.Warn("audit log has non-string action field")
		return "", false
	}

	lower := strings.ToLower(action)
	switch {
	case strings.Contains(lower, "login"):
		return "login", true
	case strings.Contains(lower, "logout"):
		return "logout", true
	case strings.Contains(lower, "page_view") && strings.Contains(lower, "home"):
		return "page_view_home", true
	case strings.Contains(lower, "page_view") && (strings.Contains(lower, "it") || strings.Contains(lower, "request")):
		return "page_view_it_request", true
	case strings.Contains(lower, "view"), strings.Contains(lower, "access"):
		return "page_view_home", true
	default:
		return "login", true
	}
}

// sessionPeriod passes the field through when present and non-zero,
// defaulting to 15 minutes otherwise. A value that cannot be read as a
// number marks the record unmappable.
func (m *AuditLogMapper) sessionPeriod(raw any) (int, bool) {
	var period int
	switch v := raw.(type) {
	case nil:
	case int:
		period = v
	case int32:
		period = int(v)
	case int64:
		period = int(v)
	case float64:
		period = int(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			m.logger.Warn("audit log sessionPeriod is not numeric", slog.String("value", v.String()))
			return 0, false
		}
		period = int(f)
	case string:
		if v == "" {
			break
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			m.logger.Warn("audit log sessionPeriod is not numeric", slog.String("value", v))
			return 0, false
		}
		period = n
	default:
		m.logger.Warn("audit log sessionPeriod has unsupported type")
		return 0, false
	}

	if period == 0 {
		period = defaultSessionPeriod
	}
	return period, true
}

// rawToSlice normalizes the roles field, which arrives either as []any
// (decoded JSON) or []string (typed callers).
func rawToSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, true
	}
}
