package services

import (
	"github.com/mr-tron/base58"
)

// Solana public keys are 32 bytes, which base58 encodes to 32-44 characters.
const (
	minAddressLength = 32
	maxAddressLength = 44
	publicKeyLength  = 32
)

// WalletService handles wallet address checks. Ownership of the address is
// not verified; the address string is trusted as presented by the browser
// extension.
type WalletService struct{}

// NewWalletService creates a new WalletService
func NewWalletService() *WalletService {
	return &WalletService{}
}

// IsValidAddress reports whether address is a well-formed base58 public key
func (s *WalletService) IsValidAddress(address string) bool {
	if len(address) < minAddressLength || len(address) > maxAddressLength {
		return false
	}

	decoded, err := base58.Decode(address)
	if err != nil {
		return false
	}

	return len(decoded) == publicKeyLength
}

// ShortAddress renders an address as its first and last four characters, the
// form shown in the frontend wallet button
func (s *WalletService) ShortAddress(address string) string {
	if len(address) <= 8 {
		return address
	}
	return address[:4] + "..." + address[len(address)-4:]
}
