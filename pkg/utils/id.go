package utils

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	idMu   sync.Mutex
	idMono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	idMono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// NewID returns a lowercase ULID. IDs created within the same millisecond
// still sort in creation order.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), idMono)
	if err != nil {
		// monotonic entropy overflow within one millisecond; fall back to fresh entropy
		id = ulid.MustNew(ulid.Timestamp(time.Now().UTC()), cryptoRand.Reader)
	}
	return strings.ToLower(id.String())
}
