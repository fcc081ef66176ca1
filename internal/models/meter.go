package models

// Meter is a customer meter fed by a service line. Leaf of the project tree.
type Meter struct {
	ID                    int64    `json:"id"`
	MeterNumber           string   `json:"meterNumber"`
	CustomerAccountNumber string   `json:"customerAccountNumber"`
	UnitIdentifier        string   `json:"unitIdentifier"`
	UddUsage              *float64 `json:"uddUsage"`  // annual usage, therms/yr
	BaseUsage             *float64 `json:"baseUsage"` // base usage, therms/mo
}

// MeterPatch carries the editable meter fields. Absent members are left untouched.
type MeterPatch struct {
	MeterNumber           *string           `json:"meterNumber,omitempty"`
	CustomerAccountNumber *string           `json:"customerAccountNumber,omitempty"`
	UnitIdentifier        *string           `json:"unitIdentifier,omitempty"`
	UddUsage              Nullable[float64] `json:"uddUsage"`
	BaseUsage             Nullable[float64] `json:"baseUsage"`
}

// Apply copies every present member of the patch onto m.
func (p MeterPatch) Apply(m *Meter) {
	setIf(p.MeterNumber, &m.MeterNumber)
	setIf(p.CustomerAccountNumber, &m.CustomerAccountNumber)
	setIf(p.UnitIdentifier, &m.UnitIdentifier)
	p.UddUsage.applyTo(&m.UddUsage)
	p.BaseUsage.applyTo(&m.BaseUsage)
}

func (m *Meter) Clone() *Meter {
	c := *m
	c.UddUsage = cloneFloat(m.UddUsage)
	c.BaseUsage = cloneFloat(m.BaseUsage)
	return &c
}
