package domain

// Well-known contract names, matching the compiled artifact names.
const (
	EventCreatorContract   = "EventCreator"
	MockAggregatorContract = "MockV3Aggregator"
)
