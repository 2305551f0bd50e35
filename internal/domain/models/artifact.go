package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Artifact represents a Hardhat compilation artifact (hh-sol-artifact-1)
type Artifact struct {
	Format                 string          `json:"_format"`
	ContractName           string          `json:"contractName"`
	SourceName             string          `json:"sourceName"`
	ABI                    json.RawMessage `json:"abi"`
	Bytecode               string          `json:"bytecode"`
	DeployedBytecode       string          `json:"deployedBytecode"`
	LinkReferences         map[string]any  `json:"linkReferences"`
	DeployedLinkReferences map[string]any  `json:"deployedLinkReferences"`

	// Path of the artifact file, relative to the project root
	Path string `json:"-"`
	// BuildInfoPath is resolved from the sibling .dbg.json file, if any
	BuildInfoPath string `json:"-"`
}

// FullyQualifiedName returns "sourceName:ContractName"
func (a *Artifact) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}

// ParsedABI decodes the artifact ABI
func (a *Artifact) ParsedABI() (*abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(string(a.ABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.ContractName, err)
	}
	return &parsed, nil
}

// IsLinked reports whether the creation bytecode needs no library linking
func (a *Artifact) IsLinked() bool {
	return len(a.LinkReferences) == 0 && !strings.Contains(a.Bytecode, "__")
}

// CreationCode returns the decoded creation bytecode
func (a *Artifact) CreationCode() []byte {
	return common.FromHex(a.Bytecode)
}

// BytecodeHash identifies an implementation independent of its address
func (a *Artifact) BytecodeHash() common.Hash {
	return crypto.Keccak256Hash(a.CreationCode())
}

// BuildInfo is the subset of a Hardhat build-info file used for verification
type BuildInfo struct {
	ID              string          `json:"id"`
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

// DebugFile is the <Name>.dbg.json that points at the build-info
type DebugFile struct {
	Format    string `json:"_format"`
	BuildInfo string `json:"buildInfo"`
}
