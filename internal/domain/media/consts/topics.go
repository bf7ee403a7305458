package consts

// Kafka topics for fetch outcome events
const (
	TopicFetchCompleted = "media.fetch.completed"
	TopicFetchFailed    = "media.fetch.failed"
)
