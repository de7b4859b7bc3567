package breed

import (
	"context"
	"crypto/ed25519"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hatchery-labs/breed-client/pkg/metrics"
	"github.com/hatchery-labs/breed-client/pkg/solana"
	"github.com/hatchery-labs/breed-client/pkg/solana/breeding"
	"github.com/hatchery-labs/breed-client/pkg/solana/token"
)

// ErrNoMachine indicates the configured breeding machine does not exist
// on chain.
var ErrNoMachine = errors.New("breeding machine account not found")

// Action is one of the user-triggered breeding operations.
type Action uint8

const (
	ActionInitialize Action = iota
	ActionFinalize
	ActionCancel

	// ActionInitializeAndFinalize batches both operations into one
	// atomic transaction, for machines with no waiting period.
	ActionInitializeAndFinalize
)

func (a Action) String() string {
	switch a {
	case ActionInitialize:
		return "initialize"
	case ActionFinalize:
		return "finalize"
	case ActionCancel:
		return "cancel"
	case ActionInitializeAndFinalize:
		return "initialize_and_finalize"
	}
	return "unknown"
}

func (a Action) mintsReward() bool {
	return a == ActionFinalize || a == ActionInitializeAndFinalize
}

// SessionState is a snapshot of a breeding action's progress.
type SessionState struct {
	Status        Status
	FailureReason FailureReason
	Err           error
	Signature     solana.Signature
	UpdatedAt     time.Time
}

// Handle tracks one submitted breeding action. A handle becomes inert
// once its state is terminal; a superseded handle never transitions
// again.
type Handle struct {
	id      uuid.UUID
	action  Action
	session SessionContext

	mu    sync.Mutex
	state SessionState
	done  chan struct{}
}

func (h *Handle) ID() uuid.UUID {
	return h.id
}

func (h *Handle) Action() Action {
	return h.action
}

// State returns the current state snapshot.
func (h *Handle) State() SessionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Done is closed when the handle reaches a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Orchestrator drives breeding actions through their full lifecycle:
// address resolution, instruction building, signing, submission, and
// confirmation. At most one action is live at a time; starting a new
// one supersedes the previous handle.
type Orchestrator struct {
	log     *logrus.Entry
	conf    *Config
	sc      solana.Client
	wallet  Wallet
	builder *Builder
	minter  RewardMinter

	mu       sync.Mutex
	current  *Handle
	lastErr  error
	listener func(SessionState)

	machineMu      sync.RWMutex
	machine        *breeding.BreedMachineAccount
	machineUpdated time.Time
}

func NewOrchestrator(conf *Config, sc solana.Client, wallet Wallet, builder *Builder, minter RewardMinter) *Orchestrator {
	return &Orchestrator{
		log:     logrus.StandardLogger().WithField("type", "breed/orchestrator"),
		conf:    conf,
		sc:      sc,
		wallet:  wallet,
		builder: builder,
		minter:  minter,
	}
}

// Machine returns the last loaded machine state, if any.
func (o *Orchestrator) Machine() (*breeding.BreedMachineAccount, time.Time) {
	o.machineMu.RLock()
	defer o.machineMu.RUnlock()
	return o.machine, o.machineUpdated
}

// Current returns the live handle, or nil when idle.
func (o *Orchestrator) Current() *Handle {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Status returns the live handle's status, or StatusIdle.
func (o *Orchestrator) Status() Status {
	h := o.Current()
	if h == nil {
		return StatusIdle
	}
	return h.State().Status
}

// LastError returns the error from the most recent failed action.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// SetStatusListener registers a callback invoked on every state
// transition. Must be set before the first Start.
func (o *Orchestrator) SetStatusListener(listener func(SessionState)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listener = listener
}

func (o *Orchestrator) notify(state SessionState) {
	o.mu.Lock()
	listener := o.listener
	o.mu.Unlock()

	if listener != nil {
		listener(state)
	}
}

// FeeBalance returns the wallet's balance of the initialization fee
// token. A missing fee account reports a zero balance.
func (o *Orchestrator) FeeBalance(ctx context.Context) (uint64, error) {
	tracer := metrics.TraceMethodCall(ctx, "breed/orchestrator", "FeeBalance")
	defer tracer.End()

	if o.wallet == nil || len(o.wallet.PublicKey()) != ed25519.PublicKeySize {
		return 0, ErrNoWallet
	}

	ata, err := token.GetAssociatedAccount(o.wallet.PublicKey(), o.conf.FeeTokenAddress)
	if err != nil {
		return 0, errors.Wrap(err, "failed to derive fee account")
	}

	account, err := token.NewClient(o.sc, o.conf.FeeTokenAddress).GetAccount(ata, solana.CommitmentConfirmed)
	if err == token.ErrAccountNotFound {
		return 0, nil
	} else if err != nil {
		tracer.OnError(err)
		return 0, err
	}

	return account.Amount, nil
}

// RefreshMachine reloads the breeding machine account from chain.
func (o *Orchestrator) RefreshMachine(ctx context.Context) (*breeding.BreedMachineAccount, error) {
	tracer := metrics.TraceMethodCall(ctx, "breed/orchestrator", "RefreshMachine")
	defer tracer.End()

	address, err := o.builder.MachineAddress()
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive machine address")
	}

	info, err := o.sc.GetAccountInfo(address, solana.CommitmentConfirmed)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrNoMachine
	} else if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to get machine account")
	}

	machine := &breeding.BreedMachineAccount{}
	if err := machine.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal machine account")
	}

	o.machineMu.Lock()
	o.machine = machine
	o.machineUpdated = time.Now()
	o.machineMu.Unlock()

	return machine, nil
}

// Start begins a breeding action for the provided parent mints,
// superseding any in-flight handle. The returned handle reports
// progress; the caller observes it, never resubmits through it.
func (o *Orchestrator) Start(ctx context.Context, action Action, mintA, mintB ed25519.PublicKey) (*Handle, error) {
	if o.wallet == nil || len(o.wallet.PublicKey()) != ed25519.PublicKeySize {
		return nil, ErrNoWallet
	}

	session := SessionContext{
		UserWallet: o.wallet.PublicKey(),
		MintA:      mintA,
		MintB:      mintB,
	}
	if err := session.validate(); err != nil {
		return nil, err
	}

	handle := &Handle{
		id:      uuid.New(),
		action:  action,
		session: session,
		state: SessionState{
			Status:    StatusResolvingAddresses,
			UpdatedAt: time.Now(),
		},
		done: make(chan struct{}),
	}

	o.mu.Lock()
	superseded := o.supersedeLocked()
	o.current = handle
	o.lastErr = nil
	o.mu.Unlock()

	if superseded != nil {
		o.notify(*superseded)
	}
	o.notify(handle.State())

	go o.run(ctx, handle)

	return handle, nil
}

// StartInitializeAndFinalize runs both operations as one atomic
// transaction and mints the reward on success.
func (o *Orchestrator) StartInitializeAndFinalize(ctx context.Context, mintA, mintB ed25519.PublicKey) (*Handle, error) {
	return o.Start(ctx, ActionInitializeAndFinalize, mintA, mintB)
}

// supersedeLocked marks the live handle as superseded and returns the
// resulting state for notification. Callers must hold o.mu.
func (o *Orchestrator) supersedeLocked() *SessionState {
	prior := o.current
	if prior == nil {
		return nil
	}

	var superseded *SessionState
	prior.mu.Lock()
	if !prior.state.Status.Terminal() {
		prior.state.Status = StatusSuperseded
		prior.state.UpdatedAt = time.Now()
		superseded = &SessionState{}
		*superseded = prior.state
		close(prior.done)
	}
	prior.mu.Unlock()

	o.current = nil
	return superseded
}

// update applies a state mutation to h, provided h is still the live
// handle and not yet terminal. Returns false when the mutation was
// dropped, which tells the pipeline to stop.
func (o *Orchestrator) update(h *Handle, fn func(*SessionState)) bool {
	o.mu.Lock()
	live := o.current == h
	o.mu.Unlock()
	if !live {
		return false
	}

	h.mu.Lock()
	if h.state.Status.Terminal() {
		h.mu.Unlock()
		return false
	}

	fn(&h.state)
	h.state.UpdatedAt = time.Now()
	snapshot := h.state
	terminal := h.state.Status.Terminal()
	h.mu.Unlock()

	if terminal {
		close(h.done)
	}
	o.notify(snapshot)

	return !terminal
}

func (o *Orchestrator) fail(h *Handle, reason FailureReason, err error) {
	o.mu.Lock()
	if o.current == h {
		o.lastErr = err
	}
	o.mu.Unlock()

	o.update(h, func(s *SessionState) {
		s.Status = StatusFailed
		s.FailureReason = reason
		s.Err = err
	})
}

func (o *Orchestrator) run(ctx context.Context, h *Handle) {
	log := o.log.WithFields(logrus.Fields{
		"method": "run",
		"id":     h.id,
		"action": h.action.String(),
	})

	defer o.finish(ctx, h)

	if _, err := o.RefreshMachine(ctx); err != nil {
		log.WithError(err).Warn("failed to load machine state")
		o.fail(h, FailurePrecondition, err)
		return
	}

	if !o.update(h, func(s *SessionState) { s.Status = StatusBuildingInstructions }) {
		return
	}

	instructions, err := o.buildInstructions(ctx, h)
	if err != nil {
		log.WithError(err).Warn("failed to build action")
		o.fail(h, FailurePrecondition, err)
		return
	}

	if !o.update(h, func(s *SessionState) { s.Status = StatusAwaitingSignature }) {
		return
	}

	blockhash, err := o.sc.GetLatestBlockhash()
	if err != nil {
		log.WithError(err).Warn("failed to get latest blockhash")
		o.fail(h, FailureNetwork, err)
		return
	}

	txn := solana.NewTransaction(h.session.UserWallet, instructions...)
	txn.SetBlockhash(blockhash)

	if err := o.wallet.SignTransaction(ctx, &txn); err != nil {
		log.WithError(err).Info("transaction not signed")
		o.fail(h, FailurePrecondition, err)
		return
	}

	if !o.update(h, func(s *SessionState) { s.Status = StatusSubmitting }) {
		return
	}

	sig, err := o.sc.SubmitTransaction(txn, solana.CommitmentConfirmed)
	if err != nil {
		log.WithError(err).Warn("failed to submit transaction")
		if _, ok := err.(*solana.TransactionError); ok {
			o.fail(h, FailureProgram, err)
		} else {
			o.fail(h, FailureNetwork, err)
		}
		return
	}

	if !o.update(h, func(s *SessionState) {
		s.Status = StatusConfirming
		s.Signature = sig
	}) {
		return
	}

	if err := o.awaitConfirmation(ctx, sig); err != nil {
		log.WithError(err).Warn("failed to confirm transaction")
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			o.fail(h, FailureTimeout, err)
		default:
			if txErr, ok := err.(*solana.TransactionError); ok {
				if code, ok := breeding.GetProgramErrorCode(txErr); ok {
					log.WithField("code", int(code)).Warn("program rejected the transaction")
				}
				o.fail(h, FailureProgram, err)
			} else {
				o.fail(h, FailureNetwork, err)
			}
		}
		return
	}

	if h.action.mintsReward() {
		if _, err := o.minter.MintReward(ctx, h.session.UserWallet); err != nil {
			log.WithError(err).Warn("failed to mint reward")
			o.fail(h, FailureNetwork, err)
			return
		}
	}

	o.update(h, func(s *SessionState) { s.Status = StatusSucceeded })
}

// buildInstructions assembles the full instruction list for an action.
// The combined action concatenates both built actions so the whole flow
// lands or fails as one transaction.
func (o *Orchestrator) buildInstructions(ctx context.Context, h *Handle) ([]solana.Instruction, error) {
	switch h.action {
	case ActionInitialize:
		built, err := o.builder.BuildInitialize(ctx, &h.session)
		if err != nil {
			return nil, err
		}
		return built.Instructions(), nil
	case ActionFinalize:
		built, err := o.builder.BuildFinalize(ctx, &h.session)
		if err != nil {
			return nil, err
		}
		return built.Instructions(), nil
	case ActionCancel:
		built, err := o.builder.BuildCancel(ctx, &h.session)
		if err != nil {
			return nil, err
		}
		return built.Instructions(), nil
	case ActionInitializeAndFinalize:
		initialize, err := o.builder.BuildInitialize(ctx, &h.session)
		if err != nil {
			return nil, err
		}
		finalize, err := o.builder.BuildFinalize(ctx, &h.session)
		if err != nil {
			return nil, err
		}
		return append(initialize.Instructions(), finalize.Instructions()...), nil
	default:
		return nil, errors.Errorf("unsupported action: %d", h.action)
	}
}

// awaitConfirmation polls for the signature to reach the confirmed
// commitment, bounded by the configured confirmation timeout. It never
// resubmits the transaction.
func (o *Orchestrator) awaitConfirmation(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, o.conf.ConfirmationTimeout)
	defer cancel()

	for {
		statuses, err := o.sc.GetSignatureStatuses([]solana.Signature{sig})
		if err == nil && len(statuses) > 0 && statuses[0] != nil {
			status := statuses[0]
			if status.ErrorResult != nil {
				return status.ErrorResult
			}
			if status.Confirmed() {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(solana.PollRate):
		}
	}
}

// finish performs the single post-terminal refresh and schedules the
// cooldown transition back to idle.
func (o *Orchestrator) finish(ctx context.Context, h *Handle) {
	state := h.State()
	if state.Status == StatusSuperseded {
		return
	}

	metrics.RecordCount(ctx, "breed_action_"+state.Status.String(), 1)

	if _, err := o.RefreshMachine(ctx); err != nil {
		o.log.WithError(err).Warn("failed to refresh machine state")
	}

	time.AfterFunc(o.conf.CooldownDelay, func() {
		o.mu.Lock()
		if o.current == h {
			o.current = nil
		}
		o.mu.Unlock()
	})
}
