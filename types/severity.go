package types

type Severity string

const (
	SeverityHigh           Severity = "high"
	SeverityModerateToHigh Severity = "moderate_to_high"
	SeverityModerate       Severity = "moderate"
	SeverityLow            Severity = "low"
	SeverityNone           Severity = "none"
)
