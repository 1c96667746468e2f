package usersvc

// Stats summarizes cache contents and resolution activity.
type Stats struct {
	TotalUsersCached int64            `json:"totalUsersCached"`
	Regions          map[string]int64 `json:"regions"`
	QueueSize        int              `json:"queueSize"`
	InFlight         int              `json:"inFlight"`
	InFlightIDs      []int64          `json:"inFlightIds"`
}

// QueueInfo describes the fetch queue and outstanding claims.
type QueueInfo struct {
	QueueSize      int     `json:"queueSize"`
	QueueCapacity  int     `json:"queueCapacity"`
	QueueAvailable int     `json:"queueAvailable"`
	InFlight       int     `json:"inFlight"`
	InFlightIDs    []int64 `json:"inFlightIds"`
}

// ListRequest selects cached records for listing.
type ListRequest struct {
	// Filter is an optional CEL expression over id, display_name,
	// region, and created_ms. Empty means match everything.
	Filter string
	// Limit caps the number of returned records; 0 means the default.
	Limit int
}
