// Package erc20 holds the ERC-20 ABI fragment used for approvals: the
// approve and allowance methods and the Approval event.
package erc20

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ABI is the subset of the ERC-20 interface used here.
const ABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "approve",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "owner", "type": "address"},
			{"name": "spender", "type": "address"}
		],
		"name": "allowance",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "owner", "type": "address"},
			{"indexed": true, "name": "spender", "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		],
		"name": "Approval",
		"type": "event"
	}
]`

// Method and event names in ABI.
const (
	MethodApprove   = "approve"
	MethodAllowance = "allowance"
	EventApproval   = "Approval"
)

// Parsed is ABI parsed once at init.
var Parsed = mustParse(ABI)

func mustParse(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("erc20: bad ABI: " + err.Error())
	}
	return parsed
}

// PackApprove encodes approve(spender, amount).
func PackApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	return Parsed.Pack(MethodApprove, spender, amount)
}

// PackAllowance encodes allowance(owner, spender).
func PackAllowance(owner, spender common.Address) ([]byte, error) {
	return Parsed.Pack(MethodAllowance, owner, spender)
}

// UnpackAllowance decodes the allowance return value.
func UnpackAllowance(data []byte) (*big.Int, error) {
	out, err := Parsed.Unpack(MethodAllowance, data)
	if err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

// ApprovalTopic is the Approval event signature hash.
func ApprovalTopic() common.Hash {
	return Parsed.Events[EventApproval].ID
}
