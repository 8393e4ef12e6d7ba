package metrics

const (
	Namespace       = "tontoken"
	LedgerSubsystem = "ledger"
	VotingSubsystem = "voting"
	APISubsystem    = "api"
)

const (
	LedgerOperation = "operation"
	LedgerResult    = "result"
	LedgerSuccess   = "success"
	LedgerRejected  = "rejected"

	VotingEventType = "type"
)
