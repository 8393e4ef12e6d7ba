package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLLedger           = APIPrefix + APIVersionV1 + "/"
	URLAccounts         = APIPrefix + APIVersionV1 + "/accounts"
	URLAccount          = APIPrefix + APIVersionV1 + "/accounts/{id}"
	URLAccountAllowance = APIPrefix + APIVersionV1 + "/accounts/{id}/allowances/{spender}"
	URLVoting           = APIPrefix + APIVersionV1 + "/voting"
	URLCandidates       = APIPrefix + APIVersionV1 + "/voting/candidates"
	URLCandidate        = APIPrefix + APIVersionV1 + "/voting/candidates/{id}"
	URLEvents           = APIPrefix + APIVersionV1 + "/voting/events"
	URLPool             = APIPrefix + APIVersionV1 + "/pool"
	URLOperations       = APIPrefix + APIVersionV1 + "/operations"
)
