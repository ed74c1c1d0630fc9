package domain

// Capability names a permission checked by the authorization gate.
type Capability string

const (
	CapViewLogbook   Capability = "logbook:view"
	CapViewStats     Capability = "logbook:stats"
	CapManageLogbook Capability = "logbook:manage"
	// CapManageAnyLogbook lets staff delete entries of any owner.
	CapManageAnyLogbook Capability = "logbook:manage-any"
)

// ValidCapabilities is the canonical set of accepted capability strings.
var ValidCapabilities = map[string]bool{
	string(CapViewLogbook):      true,
	string(CapViewStats):        true,
	string(CapManageLogbook):    true,
	string(CapManageAnyLogbook): true,
}

// Metric selects which per-entry value the aggregation averages.
type Metric string

const (
	MetricWorkHours  Metric = "work_hours"
	MetricDistanceKm Metric = "distance_km"
)
