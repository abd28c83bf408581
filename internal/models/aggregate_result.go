package models

// AggregateResult is computed per query from a window of events and is never stored.
type AggregateResult struct {
	TotalEvents     int64
	UniqueVisitors  int64
	UniqueCountries int64

	URLs       CountGroup
	Countries  CountGroup
	Cities     CountGroup
	Hours      CountGroup
	Browsers   CountGroup
	Devices    CountGroup
	OS         CountGroup
	UAFamilies CountGroup

	// Recent holds the newest events of the window, newest first.
	Recent []Event
}
