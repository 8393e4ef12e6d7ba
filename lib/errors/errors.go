package errors

// Validation errors
var (
	InsufficientBalance      = NewError(100, "insufficient balance")
	InsufficientAllowance    = NewError(101, "insufficient allowance")
	BelowVotingMinimum       = NewError(102, "balance is below the voting minimum")
	BelowProposalMinimum     = NewError(103, "balance is below the proposal minimum")
	DuplicateProposal        = NewError(104, "address already proposed a candidate")
	AlreadyCandidate         = NewError(105, "recipient is already nominated")
	CandidateNotFound        = NewError(106, "candidate not found")
	AlreadyVoted             = NewError(107, "address already voted in this cycle")
	UnauthorizedDelegate     = NewError(108, "caller is not the registered delegate")
	InvalidAddress           = NewError(109, "invalid address")
	ReservedAddress          = NewError(110, "address is reserved for the pool")
	InvalidDelegate          = NewError(111, "invalid delegate")
	NoDelegate               = NewError(112, "no delegate registered")
	InsufficientUnlocked     = NewError(113, "amount exceeds the unlocked balance")
	MaximumBalanceReached    = NewError(114, "monetary amount would be greater than the total supply of coins")
	AccountBalanceUnderZero  = NewError(115, "account balance will be under zero")
	InvalidAmount            = NewError(116, "invalid amount")
	InvalidCandidateMetadata = NewError(117, "invalid candidate metadata")
	InvalidParameter         = NewError(118, "invalid parameter")
	InvalidGenesis           = NewError(119, "invalid genesis")
	InvalidOperation         = NewError(120, "invalid operation")
	InvalidSignature         = NewError(121, "signature verification failed")
)

// State errors
var (
	VotingActive       = NewError(150, "proposals are closed while voting is active")
	VotingNotActive    = NewError(151, "voting is not active")
	HeightRegression   = NewError(152, "block height is lower than the last observed height")
	NotInitialized     = NewError(153, "ledger is not initialized")
	AlreadyInitialized = NewError(154, "ledger is already initialized")
	AlreadyApplied     = NewError(155, "operation is already applied")
)

// Storage errors
var (
	StorageRecordDoesNotExist  = NewError(170, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(171, "record already exists in storage")
	StorageCoreError           = NewError(172, "storage error")
	NotTransaction             = NewError(173, "storage backend is not a transaction")
	AlreadyTransaction         = NewError(174, "storage backend is already a transaction")
	UnknownStorageScheme       = NewError(175, "unknown storage scheme")
)
