package metrics

func InitPrometheusMetrics() {
	Version = PromVersion()
	Ledger = PromLedgerMetrics()
	Voting = PromVotingMetrics()
	API = PromAPIMetrics()
}
