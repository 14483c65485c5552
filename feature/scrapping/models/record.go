package models

// RelationRef lists the external ids a record links to.
type RelationRef struct {
	// Kind is the kind the ids are collected as. Polymorphic kinds are
	// classified again when the related record is imported.
	Kind EntityKind `json:"kind"`
	// ExternalIDs are source ids, deduplicated and sorted.
	ExternalIDs []int `json:"external_ids"`
}

// ConvertedRecord is a record in the target data model.
type ConvertedRecord struct {
	// Kind is the kind that was requested.
	Kind EntityKind `json:"kind"`
	// Category is the classification result and decides the target table.
	// It equals Kind for non polymorphic kinds.
	Category EntityKind `json:"category"`
	// ExternalID is the source id.
	ExternalID int `json:"external_id"`
	// SourceTypeID is the source type of polymorphic records, 0 otherwise.
	SourceTypeID int `json:"source_type_id,omitempty"`
	// Fields maps target columns to values.
	Fields map[string]any `json:"fields"`
	// Relations lists the linked records.
	Relations []RelationRef `json:"relations,omitempty"`
}

// Table is the target table, resolved from Category.
func (r *ConvertedRecord) Table() string {
	if r.Category != "" {
		return r.Category.Table()
	}
	return r.Kind.Table()
}

// WarningCode classifies a non fatal correction.
type WarningCode string

const (
	WarningClamped                 WarningCode = "clamped"
	WarningDefaulted               WarningCode = "defaulted"
	WarningClassificationAmbiguity WarningCode = "classification_ambiguity"
	WarningLanguageFallback        WarningCode = "language_fallback"
	WarningRelationFailed          WarningCode = "relation_failed"
)

// Warning reports a correction applied while importing a record.
type Warning struct {
	Field   string      `json:"field,omitempty"`
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
