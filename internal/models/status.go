package models

import "strings"

// Status - статус инцидента
type Status string

const (
	StatusPending    Status = "Pending"
	StatusDispatched Status = "Dispatched"
	StatusOnRoute    Status = "OnRoute"
	StatusArrived    Status = "Arrived"
	StatusAdmitted   Status = "Admitted"
	StatusRejected   Status = "Rejected"
	StatusCompleted  Status = "Completed"
	StatusResolved   Status = "Resolved"
)

var allStatuses = []Status{
	StatusPending, StatusDispatched, StatusOnRoute, StatusArrived,
	StatusAdmitted, StatusRejected, StatusCompleted, StatusResolved,
}

// IsTerminal сообщает, является ли статус конечным
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAdmitted, StatusCompleted, StatusResolved:
		return true
	}
	return false
}

// ParseStatus разбирает статус без учета регистра ("onroute", "ON_ROUTE" -> OnRoute)
func ParseStatus(raw string) (Status, bool) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(raw))
	for _, s := range allStatuses {
		if strings.ToLower(string(s)) == key {
			return s, true
		}
	}
	return "", false
}

// Severity - тяжесть инцидента
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity разбирает тяжесть; пустая строка дает medium
func ParseSeverity(raw string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return SeverityMedium, true
	case "low":
		return SeverityLow, true
	case "medium", "moderate":
		return SeverityMedium, true
	case "high", "critical":
		return SeverityHigh, true
	}
	return "", false
}
