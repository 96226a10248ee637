package sequence

import "fmt"

// Block is a contiguous run of Count sequence numbers starting at Start.
type Block struct {
	ScopeCode string `json:"scope_code"`
	Start     int    `json:"sequence_start"`
	Count     int    `json:"count"`
}

// Format renders a single reservation number. Sequences of six or more digits
// are not truncated.
func Format(scopeCode string, seq int) string {
	return fmt.Sprintf("%s-%05d", scopeCode, seq)
}

func (b Block) Numbers() []string {
	out := make([]string, b.Count)
	for i := range out {
		out[i] = Format(b.ScopeCode, b.Start+i)
	}
	return out
}

// Next returns the block that immediately follows b. It is the retry block
// after a collision and is computed without reading the store again.
func (b Block) Next() Block {
	return Block{ScopeCode: b.ScopeCode, Start: b.Start + b.Count, Count: b.Count}
}
