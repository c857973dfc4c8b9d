package usecase

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
)

// Fingerprint hashes the creation bytecode together with the ABI-encoded
// constructor arguments. Two deployments with the same fingerprint would
// produce identical contracts.
func Fingerprint(artifact *models.Artifact, args []any) (common.Hash, error) {
	packed, err := artifact.ABI.Pack("", args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode constructor arguments for %s: %w", artifact.Name, err)
	}
	return crypto.Keccak256Hash(artifact.Bytecode, packed), nil
}

// FormatArgs renders constructor arguments for records and display
func FormatArgs(args []any) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = formatArg(arg)
	}
	return out
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case common.Address:
		return v.Hex()
	case *big.Int:
		if v == nil {
			return "0"
		}
		return v.String()
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
