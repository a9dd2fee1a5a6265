package common

import (
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// IsValidAddress validates a hex account address.
// All-lowercase and all-uppercase forms are accepted as is; mixed case must match the EIP-55 checksum.
func IsValidAddress(address string) bool {
	if !ethcommon.IsHexAddress(address) {
		return false
	}

	hexPart := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	if hexPart == strings.ToLower(hexPart) || hexPart == strings.ToUpper(hexPart) {
		return true
	}

	return ethcommon.HexToAddress(address).Hex()[2:] == hexPart
}

// ShortAddress shortens an address for display: 0x1234...abcd
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
