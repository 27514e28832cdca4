package rank

import (
	"strings"
	"sync"

	"github.com/ratel-online/assistant/consts"
)

var indexes = map[string]int{}

func init() {
	for i, label := range consts.Ranks {
		indexes[label] = i
	}
}

// ParseLabel normalizes a user-entered rank label. It is case-insensitive and
// accepts T for 10.
func ParseLabel(s string) (string, error) {
	label := strings.ToUpper(strings.TrimSpace(s))
	if label == "T" {
		label = "10"
	}
	if _, ok := indexes[label]; !ok {
		return "", consts.ErrorsUnknownRank
	}
	return label, nil
}

// Tally counts clicks per rank label. Every label is always present; counts
// are not bounded here, legality is left to the engine.
type Tally struct {
	sync.RWMutex
	counts [15]int
}

func NewTally() *Tally {
	return &Tally{}
}

func (t *Tally) Increment(label string) error {
	i, err := index(label)
	if err != nil {
		return err
	}
	t.Lock()
	defer t.Unlock()
	t.counts[i]++
	return nil
}

// Decrement lowers the count of label, stopping at zero.
func (t *Tally) Decrement(label string) error {
	i, err := index(label)
	if err != nil {
		return err
	}
	t.Lock()
	defer t.Unlock()
	if t.counts[i] > 0 {
		t.counts[i]--
	}
	return nil
}

func (t *Tally) Count(label string) int {
	i, err := index(label)
	if err != nil {
		return 0
	}
	t.RLock()
	defer t.RUnlock()
	return t.counts[i]
}

// Counts returns all 15 labels with their counts.
func (t *Tally) Counts() map[string]int {
	t.RLock()
	defer t.RUnlock()
	counts := make(map[string]int, len(consts.Ranks))
	for i, label := range consts.Ranks {
		counts[label] = t.counts[i]
	}
	return counts
}

// Slice returns counts in rank order.
func (t *Tally) Slice() []int {
	t.RLock()
	defer t.RUnlock()
	return append([]int{}, t.counts[:]...)
}

func (t *Tally) IsZero() bool {
	t.RLock()
	defer t.RUnlock()
	for _, c := range t.counts {
		if c > 0 {
			return false
		}
	}
	return true
}

func (t *Tally) Reset() {
	t.Lock()
	defer t.Unlock()
	t.counts = [15]int{}
}

func (t *Tally) String() string {
	return Serialize(t)
}

// Serialize writes each label repeated by its count in rank order. An empty
// tally serializes to PASS.
func Serialize(t *Tally) string {
	t.RLock()
	defer t.RUnlock()
	buf := strings.Builder{}
	for i, label := range consts.Ranks {
		for n := 0; n < t.counts[i]; n++ {
			buf.WriteString(label)
		}
	}
	if buf.Len() == 0 {
		return consts.Pass
	}
	return buf.String()
}

func index(label string) (int, error) {
	label, err := ParseLabel(label)
	if err != nil {
		return 0, err
	}
	return indexes[label], nil
}
