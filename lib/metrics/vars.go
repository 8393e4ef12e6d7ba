package metrics

var (
	Ledger = NopLedgerMetrics()
	Voting = NopVotingMetrics()
	API    = NopAPIMetrics()
)
