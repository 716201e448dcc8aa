package enum

// JobType represents the kind of asynchronous work an outbox entry carries.
//
//go:generate go tool enumer -type=JobType -trimprefix=JobType
type JobType int

const (
	JobTypeRecomputeItem JobType = iota
	JobTypeReputationUpdate
	JobTypeNotifyNearby
)
