package models

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract ready for deployment
type Artifact struct {
	Name     string
	Path     string // artifact file the contract was loaded from
	ABI      abi.ABI
	Bytecode []byte // creation bytecode, without constructor arguments
}

// HasConstructorInputs reports whether the constructor takes arguments
func (a *Artifact) HasConstructorInputs() bool {
	return len(a.ABI.Constructor.Inputs) > 0
}
