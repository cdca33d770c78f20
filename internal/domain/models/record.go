package models

import "time"

// Record is one finalized equipment inventory entry. String fields are never
// null; an absent value is the empty string. CreatedAt is stamped once at
// finalization (milliseconds since epoch) and never edited afterwards.
type Record struct {
	EquipmentType string `json:"equipmentType"`
	Patrimony     string `json:"patrimony"`
	Location      string `json:"location"`
	Manufacturer  string `json:"manufacturer"`
	Model         string `json:"model,omitempty"`
	User          string `json:"user"`
	CreatedAt     int64  `json:"createdAt"`
}

// CreatedTime converts the millisecond timestamp back to a time.Time in UTC.
func (r Record) CreatedTime() time.Time {
	return time.UnixMilli(r.CreatedAt).UTC()
}

// Draft is the in-progress record under wizard construction. It has the same
// shape as Record minus the timestamp, which only exists after finalization.
type Draft struct {
	EquipmentType string `json:"equipmentType"`
	Patrimony     string `json:"patrimony"`
	Location      string `json:"location"`
	Manufacturer  string `json:"manufacturer"`
	Model         string `json:"model,omitempty"`
	User          string `json:"user"`
}

// IsEmpty reports whether every draft field is the empty string.
func (d Draft) IsEmpty() bool {
	return d.EquipmentType == "" && d.Patrimony == "" && d.Location == "" &&
		d.Manufacturer == "" && d.Model == "" && d.User == ""
}

// Finalize stamps the draft into an immutable Record using the provided
// creation instant.
func (d Draft) Finalize(at time.Time) Record {
	return Record{
		EquipmentType: d.EquipmentType,
		Patrimony:     d.Patrimony,
		Location:      d.Location,
		Manufacturer:  d.Manufacturer,
		Model:         d.Model,
		User:          d.User,
		CreatedAt:     at.UnixMilli(),
	}
}
