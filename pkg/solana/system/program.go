package system

// ProgramKey is the system program address, which is the zero key.
//
// https://explorer.solana.com/address/11111111111111111111111111111111
var ProgramKey [32]byte
