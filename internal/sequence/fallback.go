package sequence

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const fallbackAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// FallbackNumber builds "RES<epoch-ms>-<5 random chars>". It gives up the
// sequential scheme for uniqueness and is only used when allocation fails.
func FallbackNumber(now time.Time) string {
	return fmt.Sprintf("RES%d-%s", now.UnixMilli(), randomSuffix(5))
}

// FallbackNumbers returns n distinct fallback numbers sharing one timestamp.
func FallbackNumbers(now time.Time, n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		s := FallbackNumber(now)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(fallbackAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = fallbackAlphabet[time.Now().UnixNano()%int64(len(fallbackAlphabet))]
			continue
		}
		b[i] = fallbackAlphabet[idx.Int64()]
	}
	return string(b)
}
