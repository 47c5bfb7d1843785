package v1

// ValidationResult carries the outcome of validating a single record.
// Errors make the record invalid; warnings never block storage.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// AddError appends a hard violation and flips the result to invalid.
func (r *ValidationResult) AddError(message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, message)
}

// AddWarning appends a soft anomaly without affecting validity.
func (r *ValidationResult) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// NewValidationResult returns a result that is valid until an error is added.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}

// QualityMetrics tracks cumulative validation counters for one data type.
// Process lifetime only, never persisted.
type QualityMetrics struct {
	TotalRecords   int64            `json:"totalRecords"`
	ValidRecords   int64            `json:"validRecords"`
	InvalidRecords int64            `json:"invalidRecords"`
	CommonErrors   map[string]int64 `json:"commonErrors"`
}

// NewQualityMetrics creates an empty metrics entry.
func NewQualityMetrics() *QualityMetrics {
	return &QualityMetrics{
		CommonErrors: make(map[string]int64),
	}
}

// Record applies one validation outcome to the counters.
func (m *QualityMetrics) Record(result *ValidationResult) {
	m.TotalRecords++
	if result.IsValid {
		m.ValidRecords++
		return
	}
	m.InvalidRecords++
	for _, message := range result.Errors {
		m.CommonErrors[message]++
	}
}

// ValidationRate returns the percentage of records that passed validation.
func (m *QualityMetrics) ValidationRate() float64 {
	if m.TotalRecords == 0 {
		return 0
	}
	return float64(m.ValidRecords) / float64(m.TotalRecords) * 100
}

// Clone returns a copy safe to hand to callers.
func (m *QualityMetrics) Clone() *QualityMetrics {
	clone := &QualityMetrics{
		TotalRecords:   m.TotalRecords,
		ValidRecords:   m.ValidRecords,
		InvalidRecords: m.InvalidRecords,
		CommonErrors:   make(map[string]int64, len(m.CommonErrors)),
	}
	for message, count := range m.CommonErrors {
		clone.CommonErrors[message] = count
	}
	return clone
}
