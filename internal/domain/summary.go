package domain

// Distribution is the frequency table of one dimension across a record set.
// Counts holds known values only; KnownCount is the number of records that
// carried any known value, so it always equals the sum over Counts.
type Distribution struct {
	KnownCount int            `json:"known_count"`
	Counts     map[string]int `json:"counts"`
}

// Summary aggregates demographics across one result file. It is the unit
// of export: the JSON form round-trips losslessly.
type Summary struct {
	TotalRecords     int                        `json:"total_records"`
	WhatsAppAccounts int                        `json:"whatsapp_accounts"`
	AvailableAvatars int                        `json:"available_avatars"`
	Dimensions       map[Dimension]Distribution `json:"dimensions"`
}

// Distribution returns the frequency table for dim, zero-valued when the
// summary does not track it.
func (s Summary) Distribution(dim Dimension) Distribution {
	return s.Dimensions[dim]
}

// Percentage returns value's share of dim's denominator, in percent. Most
// dimensions divide by their own known count. Category divides by the
// number of records with a known avatar; a category exists only where an
// avatar does. A zero denominator yields 0.
func (s Summary) Percentage(dim Dimension, value string) float64 {
	d, ok := s.Dimensions[dim]
	if !ok {
		return 0
	}
	denom := d.KnownCount
	if dim == DimCategory {
		denom = s.AvailableAvatars
	}
	if denom == 0 {
		return 0
	}
	return float64(d.Counts[value]) / float64(denom) * 100
}
