package token

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	logging "github.com/inconshreveable/log15"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/common/observer"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/metrics"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/voting"
)

const (
	Name     = "Tontoken"
	Symbol   = "TONT"
	Decimals = common.Decimals
)

const accountCacheSize = 1024

// Token executes the ledger operations. Every mutating operation runs in its
// own storage transaction under one lock, so operations are applied one by one
// and either completely or not at all.
type Token struct {
	sync.RWMutex

	st     *storage.LevelDBBackend
	params voting.Params
	owner  string
	cache  *lru.Cache

	// notifyLock keeps the commit order for observers, which run after the
	// ledger lock is released and may query the token.
	notifyLock sync.Mutex
}

// Open loads a ledger created by `Genesis`.
func Open(st *storage.LevelDBBackend) (*Token, error) {
	meta, err := GetMeta(st)
	if err != nil {
		return nil, err
	}

	cache, err := lru.New(accountCacheSize)
	if err != nil {
		return nil, err
	}

	return &Token{
		st:     st,
		params: meta.Params,
		owner:  meta.Owner,
		cache:  cache,
	}, nil
}

func (t *Token) Storage() *storage.LevelDBBackend {
	return t.st
}

func (t *Token) Params() voting.Params {
	return t.params
}

func (t *Token) Owner() string {
	return t.owner
}

// execute runs the checker funcs of one operation inside a transaction.
func (t *Token) execute(operation string, ctx Context, checker *OperationChecker) (events []voting.Event, err error) {
	t.Lock()
	locked := true
	defer func() {
		if locked {
			t.Unlock()
		}
	}()

	logger := log.New(logging.Ctx{"operation": operation, "sender": ctx.Sender, "height": ctx.Height})
	defer func() {
		metrics.Ledger.AddOperation(operation, err)
	}()

	var ts *storage.LevelDBBackend
	if ts, err = t.st.OpenTransaction(); err != nil {
		return
	}

	var state *State
	if state, err = loadState(ts); err != nil {
		ts.Discard()
		return
	}

	if len(ctx.Hash) > 0 {
		var applied bool
		if applied, err = ts.Has(GetAppliedKey(ctx.Hash)); err != nil {
			ts.Discard()
			return
		}
		if applied {
			ts.Discard()
			err = errors.AlreadyApplied.With("hash", ctx.Hash)
			return
		}
	}

	checker.State = state
	checker.Context = ctx
	checker.Log = logger

	if err = common.RunChecker(checker, nil); err != nil {
		ts.Discard()
		logger.Debug("operation rejected", "error", err)
		return nil, err
	}

	var saved []string
	if saved, err = state.flush(); err != nil {
		ts.Discard()
		return nil, err
	}
	if len(ctx.Hash) > 0 {
		if err = ts.New(GetAppliedKey(ctx.Hash), ctx.Height); err != nil {
			ts.Discard()
			return nil, err
		}
	}
	if err = ts.Commit(); err != nil {
		return nil, err
	}

	t.cache.Purge()
	events = checker.Events
	logger.Debug("operation executed", "events", len(events))

	t.notifyLock.Lock()
	defer t.notifyLock.Unlock()
	t.Unlock()
	locked = false

	t.notify(state, saved, events)

	return events, nil
}

// notify publishes the committed changes.
func (t *Token) notify(state *State, saved []string, events []voting.Event) {
	for _, address := range saved {
		observer.AccountObserver.Trigger(observer.AccountSavedEvent(address), state.accounts[address])
	}
	for _, event := range events {
		observer.VotingObserver.Trigger(string(event.Type)+" "+observer.EventAll, event)
		metrics.Voting.AddEvent(string(event.Type))
	}

	metrics.Ledger.SetHeight(state.Meta.LastHeight)
	metrics.Ledger.SetTotalMatched(uint64(state.Accounting.TotalMatched))
	metrics.Ledger.SetTotalDonated(uint64(state.Accounting.TotalDonated))
	if poolBalance, err := state.Pool(); err == nil {
		metrics.Ledger.SetPool(uint64(poolBalance))
	}

	metrics.Voting.SetStatus(uint(state.Cycle.Status))
	metrics.Voting.SetCycleID(state.Cycle.CycleID)
	metrics.Voting.SetCandidates(len(state.Cycle.Candidates))
	metrics.Voting.SetVotes(state.Cycle.TotalVotes())
}
