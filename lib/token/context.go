package token

// Context carries what the execution substrate supplies with every call, the
// calling account and the current block height. Hash identifies a submitted
// operation; a hash is applied at most once.
type Context struct {
	Sender string
	Height uint64
	Hash   string
}

func NewContext(sender string, height uint64) Context {
	return Context{Sender: sender, Height: height}
}
