package breed

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hatchery-labs/breed-client/pkg/metrics"
	"github.com/hatchery-labs/breed-client/pkg/solana"
	"github.com/hatchery-labs/breed-client/pkg/solana/breeding"
	"github.com/hatchery-labs/breed-client/pkg/solana/token"
)

// ErrMissingMint indicates a parent mint was not provided.
var ErrMissingMint = errors.New("parent mint is missing")

// AccountExistenceChecker reports whether an account exists on chain.
// Injected into the builder so precondition checks can be mocked
// without a network.
type AccountExistenceChecker interface {
	AccountExists(ctx context.Context, address ed25519.PublicKey) (bool, error)
}

type rpcExistenceChecker struct {
	sc solana.Client
}

// NewAccountExistenceChecker returns a checker backed by the RPC client.
func NewAccountExistenceChecker(sc solana.Client) AccountExistenceChecker {
	return &rpcExistenceChecker{sc: sc}
}

func (c *rpcExistenceChecker) AccountExists(ctx context.Context, address ed25519.PublicKey) (bool, error) {
	tracer := metrics.TraceMethodCall(ctx, "rpcExistenceChecker", "AccountExists")
	defer tracer.End()

	_, err := c.sc.GetAccountInfo(address, solana.CommitmentConfirmed)
	if err == solana.ErrNoAccountInfo {
		return false, nil
	} else if err != nil {
		tracer.OnError(err)
		return false, errors.Wrap(err, "failed to get account info")
	}

	return true, nil
}

// SessionContext is the user-provided context for one breeding action.
type SessionContext struct {
	UserWallet ed25519.PublicKey
	MintA      ed25519.PublicKey
	MintB      ed25519.PublicKey
}

func (c *SessionContext) validate() error {
	if len(c.UserWallet) != ed25519.PublicKeySize {
		return ErrNoWallet
	}
	if len(c.MintA) != ed25519.PublicKeySize || len(c.MintB) != ed25519.PublicKeySize {
		return ErrMissingMint
	}
	return nil
}

// BuiltAction is an ordered list of operations ready for submission as
// one atomic transaction: account-creation preconditions first, then
// the primary operation.
type BuiltAction struct {
	Preconditions []solana.Instruction
	Primary       solana.Instruction
}

// Instructions returns the full instruction list in submission order.
func (a *BuiltAction) Instructions() []solana.Instruction {
	return append(append([]solana.Instruction{}, a.Preconditions...), a.Primary)
}

// sessionAddresses is the set of derived addresses shared by every action.
type sessionAddresses struct {
	machine   ed25519.PublicKey
	breedData ed25519.PublicKey

	userAtaA  ed25519.PublicKey
	userAtaB  ed25519.PublicKey
	vaultAtaA ed25519.PublicKey
	vaultAtaB ed25519.PublicKey
}

// Builder assembles the operation lists for the three breeding actions.
// It only ever reads chain state, to check account existence; it never
// signs or submits anything.
type Builder struct {
	log    *logrus.Entry
	conf   *Config
	exists AccountExistenceChecker
}

func NewBuilder(conf *Config, exists AccountExistenceChecker) *Builder {
	return &Builder{
		log:    logrus.StandardLogger().WithField("type", "breed/builder"),
		conf:   conf,
		exists: exists,
	}
}

// MachineAddress derives the configured machine's state address.
func (b *Builder) MachineAddress() (ed25519.PublicKey, error) {
	machine, _, err := breeding.GetBreedMachineAddress(&breeding.GetBreedMachineAddressArgs{
		Program:           b.conf.ProgramID,
		ParentsCollection: b.conf.ParentsCollectionID,
		RewardCollection:  b.conf.RewardCollectionID,
		Authority:         b.conf.AuthorityKey,
	})
	return machine, err
}

func (b *Builder) deriveSessionAddresses(sessionCtx *SessionContext) (*sessionAddresses, error) {
	machine, err := b.MachineAddress()
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive machine address")
	}

	breedData, _, err := breeding.GetBreedDataAddress(&breeding.GetBreedDataAddressArgs{
		Program: b.conf.ProgramID,
		Machine: machine,
		MintA:   sessionCtx.MintA,
		MintB:   sessionCtx.MintB,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive breed data address")
	}

	addresses := &sessionAddresses{
		machine:   machine,
		breedData: breedData,
	}

	for _, ata := range []struct {
		owner  ed25519.PublicKey
		mint   ed25519.PublicKey
		target *ed25519.PublicKey
	}{
		{sessionCtx.UserWallet, sessionCtx.MintA, &addresses.userAtaA},
		{sessionCtx.UserWallet, sessionCtx.MintB, &addresses.userAtaB},
		{breedData, sessionCtx.MintA, &addresses.vaultAtaA},
		{breedData, sessionCtx.MintB, &addresses.vaultAtaB},
	} {
		*ata.target, err = token.GetAssociatedAccount(ata.owner, ata.mint)
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive associated token account")
		}
	}

	return addresses, nil
}

// maybeCreateAta emits an ATA creation instruction only when the target
// account does not exist yet, keeping precondition lists idempotent
// against unchanged chain state.
func (b *Builder) maybeCreateAta(ctx context.Context, payer, wallet, mint ed25519.PublicKey) (*solana.Instruction, error) {
	instruction, addr, err := token.CreateAssociatedTokenAccount(payer, wallet, mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive associated token account")
	}

	exists, err := b.exists.AccountExists(ctx, addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check account existence")
	}
	if exists {
		return nil, nil
	}

	return &instruction, nil
}

// BuildInitialize produces the operations to lock two parents into a new
// breeding session. Preconditions create the fee payer's and the
// incinerator's fee token accounts when missing.
func (b *Builder) BuildInitialize(ctx context.Context, sessionCtx *SessionContext) (*BuiltAction, error) {
	tracer := metrics.TraceMethodCall(ctx, "breed/builder", "BuildInitialize")
	defer tracer.End()

	if err := sessionCtx.validate(); err != nil {
		return nil, err
	}

	addresses, err := b.deriveSessionAddresses(sessionCtx)
	if err != nil {
		return nil, err
	}

	feePayerAta, err := token.GetAssociatedAccount(sessionCtx.UserWallet, b.conf.FeeTokenAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive fee payer ata")
	}
	feeIncineratorAta, err := token.GetAssociatedAccount(b.conf.IncineratorAddress, b.conf.FeeTokenAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive incinerator ata")
	}

	var preconditions []solana.Instruction
	for _, target := range []struct {
		wallet ed25519.PublicKey
		mint   ed25519.PublicKey
	}{
		{sessionCtx.UserWallet, b.conf.FeeTokenAddress},
		{b.conf.IncineratorAddress, b.conf.FeeTokenAddress},
	} {
		instruction, err := b.maybeCreateAta(ctx, sessionCtx.UserWallet, target.wallet, target.mint)
		if err != nil {
			tracer.OnError(err)
			return nil, err
		}
		if instruction != nil {
			preconditions = append(preconditions, *instruction)
		}
	}

	return &BuiltAction{
		Preconditions: preconditions,
		Primary: breeding.NewInitializeBreedingInstruction(b.conf.ProgramID, &breeding.InitializeBreedingInstructionAccounts{
			BreedingMachine:   addresses.machine,
			BreedData:         addresses.breedData,
			MintParentA:       sessionCtx.MintA,
			UserAtaParentA:    addresses.userAtaA,
			VaultAtaParentA:   addresses.vaultAtaA,
			MintParentB:       sessionCtx.MintB,
			UserAtaParentB:    addresses.userAtaB,
			VaultAtaParentB:   addresses.vaultAtaB,
			FeeToken:          b.conf.FeeTokenAddress,
			FeePayerAta:       feePayerAta,
			FeeIncineratorAta: feeIncineratorAta,
			UserWallet:        sessionCtx.UserWallet,
		}),
	}, nil
}

// BuildFinalize produces the operations to complete a breeding session,
// unlocking the parents and paying out a whitelist token. The single
// precondition creates the user's whitelist token account when missing.
func (b *Builder) BuildFinalize(ctx context.Context, sessionCtx *SessionContext) (*BuiltAction, error) {
	tracer := metrics.TraceMethodCall(ctx, "breed/builder", "BuildFinalize")
	defer tracer.End()

	if err := sessionCtx.validate(); err != nil {
		return nil, err
	}

	addresses, err := b.deriveSessionAddresses(sessionCtx)
	if err != nil {
		return nil, err
	}

	whitelistToken, _, err := breeding.GetWhitelistTokenAddress(&breeding.GetWhitelistTokenAddressArgs{
		Program: b.conf.ProgramID,
		Machine: addresses.machine,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive whitelist token address")
	}

	whitelistVault, err := token.GetAssociatedAccount(addresses.machine, whitelistToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive whitelist vault")
	}
	userWhitelistAta, err := token.GetAssociatedAccount(sessionCtx.UserWallet, whitelistToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive user whitelist ata")
	}

	var preconditions []solana.Instruction
	instruction, err := b.maybeCreateAta(ctx, sessionCtx.UserWallet, sessionCtx.UserWallet, whitelistToken)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}
	if instruction != nil {
		preconditions = append(preconditions, *instruction)
	}

	return &BuiltAction{
		Preconditions: preconditions,
		Primary: breeding.NewFinalizeBreedingInstruction(b.conf.ProgramID, &breeding.FinalizeBreedingInstructionAccounts{
			BreedingMachine:  addresses.machine,
			BreedData:        addresses.breedData,
			MintParentA:      sessionCtx.MintA,
			MintParentB:      sessionCtx.MintB,
			UserAtaParentA:   addresses.userAtaA,
			UserAtaParentB:   addresses.userAtaB,
			VaultAtaParentA:  addresses.vaultAtaA,
			VaultAtaParentB:  addresses.vaultAtaB,
			WhitelistToken:   whitelistToken,
			WhitelistVault:   whitelistVault,
			UserWhitelistAta: userWhitelistAta,
			UserWallet:       sessionCtx.UserWallet,
		}),
	}, nil
}

// BuildCancel produces the single operation to abort a breeding session
// and return the parents. There are no preconditions.
func (b *Builder) BuildCancel(ctx context.Context, sessionCtx *SessionContext) (*BuiltAction, error) {
	tracer := metrics.TraceMethodCall(ctx, "breed/builder", "BuildCancel")
	defer tracer.End()

	if err := sessionCtx.validate(); err != nil {
		return nil, err
	}

	addresses, err := b.deriveSessionAddresses(sessionCtx)
	if err != nil {
		return nil, err
	}

	return &BuiltAction{
		Primary: breeding.NewCancelBreedingInstruction(b.conf.ProgramID, &breeding.CancelBreedingInstructionAccounts{
			BreedingMachine: addresses.machine,
			BreedData:       addresses.breedData,
			MintParentA:     sessionCtx.MintA,
			MintParentB:     sessionCtx.MintB,
			UserAtaParentA:  addresses.userAtaA,
			UserAtaParentB:  addresses.userAtaB,
			VaultAtaParentA: addresses.vaultAtaA,
			VaultAtaParentB: addresses.vaultAtaB,
			UserWallet:      sessionCtx.UserWallet,
		}),
	}, nil
}
