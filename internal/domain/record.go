package domain

import "strings"

// Dimension names one column of the analysis result the summary understands.
type Dimension string

const (
	DimWhatsApp  Dimension = "whatsapp"
	DimAvatar    Dimension = "avatar"
	DimGender    Dimension = "gender"
	DimAge       Dimension = "age"
	DimHairColor Dimension = "hair_color"
	DimSkinColor Dimension = "skin_color"
	DimCategory  Dimension = "category"
)

// SummaryDimensions lists the dimensions a summary breaks down, in display
// order.
func SummaryDimensions() []Dimension {
	return []Dimension{DimGender, DimAge, DimHairColor, DimSkinColor, DimCategory}
}

// RecordDimensions lists every recognized result column except the number
// itself.
func RecordDimensions() []Dimension {
	return append([]Dimension{DimWhatsApp, DimAvatar}, SummaryDimensions()...)
}

// Record is one parsed row of a result file: the submitted number plus the
// fields the service could determine for it. A missing map key stands for
// the service's "unknown"; parsers never store the sentinel itself.
type Record struct {
	Number string
	Fields map[Dimension]string
}

// Field returns the value for dim and whether it is known.
func (r Record) Field(dim Dimension) (string, bool) {
	v, ok := r.Fields[dim]
	return v, ok
}

// HasWhatsApp reports whether the number is a registered WhatsApp account.
func (r Record) HasWhatsApp() bool {
	return strings.EqualFold(r.Fields[DimWhatsApp], "yes")
}

// HasAvatar reports whether the service resolved a profile avatar for the
// number.
func (r Record) HasAvatar() bool {
	_, ok := r.Fields[DimAvatar]
	return ok
}
