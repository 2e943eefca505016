package sandbox

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pierrec/lz4"

	"github.com/solmock/shadow-oracle/ledger"
)

const (
	// Value encoding: owner (32) + lamports (8) + rent epoch (8) +
	// executable (1) + compressed (1) + data length (4), then the payload.
	valueHeaderSize = 32 + 8 + 8 + 1 + 1 + 4

	// Account buffers smaller than this are stored raw; compression gains
	// nothing on them.
	minCompressSize = 128

	// Read cache entries. Accounts are small, so this is generous.
	cacheSize = 1024
)

// ErrCorruptValue reports a store value that fails to decode.
var ErrCorruptValue = errors.New("corrupt account value")

// Store persists account records in a pebble database with an LRU read cache.
// Account data at or above minCompressSize is lz4-compressed on disk.
type Store struct {
	db    *pebble.DB
	cache *lru.Cache[solana.PublicKey, ledger.Account]
}

// OpenStore opens (or creates) a store at path.
func OpenStore(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open account store: %w", err)
	}
	cache, err := lru.New[solana.PublicKey, ledger.Account](cacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

// Put writes the account under its address, replacing any prior value.
func (s *Store) Put(addr solana.PublicKey, account ledger.Account) error {
	value := encodeValue(account)
	if err := s.db.Set(addr[:], value, pebble.Sync); err != nil {
		return fmt.Errorf("failed to store account %s: %w", addr, err)
	}
	s.cache.Add(addr, account)
	return nil
}

// Get reads the account under addr. The second return is false when the
// address has never been written.
func (s *Store) Get(addr solana.PublicKey) (ledger.Account, bool, error) {
	if acct, ok := s.cache.Get(addr); ok {
		return acct, true, nil
	}

	value, closer, err := s.db.Get(addr[:])
	if errors.Is(err, pebble.ErrNotFound) {
		return ledger.Account{}, false, nil
	}
	if err != nil {
		return ledger.Account{}, false, fmt.Errorf("failed to fetch account %s: %w", addr, err)
	}
	defer closer.Close()

	acct, err := decodeValue(value)
	if err != nil {
		return ledger.Account{}, false, fmt.Errorf("account %s: %w", addr, err)
	}
	s.cache.Add(addr, acct)
	return acct, true, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func encodeValue(account ledger.Account) []byte {
	payload := account.Data
	compressed := byte(0)
	if len(account.Data) >= minCompressSize {
		dst := make([]byte, lz4.CompressBlockBound(len(account.Data)))
		ht := make([]int, 1<<16)
		n, err := lz4.CompressBlock(account.Data, dst, ht)
		// n == 0 means incompressible; keep the raw bytes.
		if err == nil && n > 0 && n < len(account.Data) {
			payload = dst[:n]
			compressed = 1
		}
	}

	value := make([]byte, valueHeaderSize+len(payload))
	copy(value[0:32], account.Owner[:])
	binary.LittleEndian.PutUint64(value[32:], account.Lamports)
	binary.LittleEndian.PutUint64(value[40:], account.RentEpoch)
	if account.Executable {
		value[48] = 1
	}
	value[49] = compressed
	binary.LittleEndian.PutUint32(value[50:], uint32(len(account.Data)))
	copy(value[valueHeaderSize:], payload)
	return value
}

func decodeValue(value []byte) (ledger.Account, error) {
	if len(value) < valueHeaderSize {
		return ledger.Account{}, ErrCorruptValue
	}

	var acct ledger.Account
	copy(acct.Owner[:], value[0:32])
	acct.Lamports = binary.LittleEndian.Uint64(value[32:])
	acct.RentEpoch = binary.LittleEndian.Uint64(value[40:])
	acct.Executable = value[48] == 1
	dataLen := binary.LittleEndian.Uint32(value[50:])
	payload := value[valueHeaderSize:]

	if value[49] == 1 {
		data := make([]byte, dataLen)
		n, err := lz4.UncompressBlock(payload, data)
		if err != nil || n != int(dataLen) {
			return ledger.Account{}, ErrCorruptValue
		}
		acct.Data = data
		return acct, nil
	}

	if int(dataLen) != len(payload) {
		return ledger.Account{}, ErrCorruptValue
	}
	acct.Data = make([]byte, dataLen)
	copy(acct.Data, payload)
	return acct, nil
}
