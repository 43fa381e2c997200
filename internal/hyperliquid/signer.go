package hyperliquid

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/vmihailenco/msgpack/v5"
)

// Exchange actions are authorized with an EIP-712 signature over a phantom
// "Agent" struct whose connectionId commits to the msgpack-encoded action,
// the nonce, and the optional vault address.
const (
	eip712DomainType = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"
	agentType        = "Agent(string source,bytes32 connectionId)"

	signingDomainName    = "Exchange"
	signingDomainVersion = "1"
	signingChainID       = 1337

	mainnetAgentSource = "a"
	testnetAgentSource = "b"
)

// RsvSignature is the signature encoding the exchange expects in /exchange
// request payloads.
type RsvSignature struct {
	R string `json:"r"`
	S string `json:"s"`
	V uint8  `json:"v"`
}

// Signer owns the process credential. The key never leaves this type.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner parses a hex-encoded secp256k1 private key, with or without the
// 0x prefix. Malformed keys are a configuration error.
func NewSigner(privateKey string) (*Signer, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(privateKey), "0x")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: private key is required", entity.ErrConfiguration)
	}

	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed private key: %v", entity.ErrConfiguration, err)
	}

	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the checksummed wallet address derived from the credential.
func (s *Signer) Address() string {
	return s.address.Hex()
}

// SignAction produces the r/s/v signature for one action payload.
func (s *Signer) SignAction(action any, vaultAddress string, nonce uint64, mainnet bool) (RsvSignature, error) {
	connectionID, err := actionHash(action, vaultAddress, nonce)
	if err != nil {
		return RsvSignature{}, err
	}

	source := testnetAgentSource
	if mainnet {
		source = mainnetAgentSource
	}

	digest := agentDigest(source, connectionID)

	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return RsvSignature{}, fmt.Errorf("sign action: %w", err)
	}

	return RsvSignature{
		R: hexutil.Encode(sig[:32]),
		S: hexutil.Encode(sig[32:64]),
		V: sig[64] + 27,
	}, nil
}

// actionHash is keccak256(msgpack(action) || nonce_be8 || vault_marker).
func actionHash(action any, vaultAddress string, nonce uint64) ([]byte, error) {
	packed, err := msgpack.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("encode action: %w", err)
	}

	data := make([]byte, 0, len(packed)+8+21)
	data = append(data, packed...)

	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)
	data = append(data, nonceBytes[:]...)

	if strings.TrimSpace(vaultAddress) == "" {
		data = append(data, 0x00)
	} else {
		data = append(data, 0x01)
		data = append(data, common.HexToAddress(vaultAddress).Bytes()...)
	}

	return crypto.Keccak256(data), nil
}

func agentDigest(source string, connectionID []byte) []byte {
	chainID := make([]byte, 32)
	binary.BigEndian.PutUint64(chainID[24:], signingChainID)

	verifyingContract := make([]byte, 32) // zero address, left padded

	domainSeparator := crypto.Keccak256(
		crypto.Keccak256([]byte(eip712DomainType)),
		crypto.Keccak256([]byte(signingDomainName)),
		crypto.Keccak256([]byte(signingDomainVersion)),
		chainID,
		verifyingContract,
	)

	structHash := crypto.Keccak256(
		crypto.Keccak256([]byte(agentType)),
		crypto.Keccak256([]byte(source)),
		connectionID,
	)

	return crypto.Keccak256([]byte{0x19, 0x01}, domainSeparator, structHash)
}
