package fretboard

import (
	"fmt"
	"strings"

	"github.com/filipedeo/fretboard-api/internal/theory"
)

// Role names a string of the six-string standard layout. Voicing shapes are
// written against roles and mapped to a concrete tuning through a StringMap.
type Role int

const (
	RoleLowE Role = iota
	RoleA
	RoleD
	RoleG
	RoleB
	RoleHighE
	roleCount
)

var roleNames = [roleCount]string{"low-e", "a", "d", "g", "b", "high-e"}

// Open pitch classes of the standard layout, per role
var roleChromas = [roleCount]int{4, 9, 2, 7, 11, 4}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole accepts a role name ("d", "high-e") or its index ("2")
func ParseRole(s string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range roleNames {
		if name == key {
			return Role(i), nil
		}
	}
	if len(key) == 1 && key[0] >= '0' && key[0] < '0'+byte(roleCount) {
		return Role(key[0] - '0'), nil
	}
	return 0, fmt.Errorf("unknown string role %q", s)
}

// StringMap maps roles onto the string indices of one tuning
type StringMap struct {
	offset  int
	strings int
}

// StringMap aligns the six-string layout with the tuning. The alignment is the
// lowest offset whose open pitch classes agree with the most roles. When
// nothing matches (e.g. a fully down-tuned instrument) extra strings are
// assumed to be added below.
func (t Tuning) StringMap() StringMap {
	n := t.Len()
	fallback := n - int(roleCount)
	if fallback < 0 {
		fallback = 0
	}

	bestOffset, bestScore := fallback, 0
	for offset := 0; offset < n; offset++ {
		score := 0
		for r := Role(0); r < roleCount; r++ {
			open, ok := t.Open(offset + int(r))
			if !ok {
				break
			}
			if theory.Chroma(open) == roleChromas[r] {
				score++
			}
		}
		if score > bestScore {
			bestOffset, bestScore = offset, score
		}
	}
	return StringMap{offset: bestOffset, strings: n}
}

// Offset is the index of the low-E role on this tuning
func (m StringMap) Offset() int {
	return m.offset
}

// Index returns the string index of a role; false when the tuning lacks it
func (m StringMap) Index(r Role) (int, bool) {
	if r < 0 || r >= roleCount {
		return 0, false
	}
	idx := m.offset + int(r)
	if idx >= m.strings {
		return 0, false
	}
	return idx, true
}

// MarshalText encodes a role by name
func (r Role) MarshalText() ([]byte, error) {
	if r < 0 || r >= roleCount {
		return nil, fmt.Errorf("invalid string role %d", int(r))
	}
	return []byte(roleNames[r]), nil
}

// UnmarshalText accepts anything ParseRole does
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
