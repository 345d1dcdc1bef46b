package hierarchy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dcastano/contable_app/internal/core/domain"
)

// levelOrder is the fixed depth-class sequence of the chart of accounts.
// The code length assigned to each class comes from the policy, not from here.
var levelOrder = []domain.AccountLevel{
	domain.LevelClass,
	domain.LevelGroup,
	domain.LevelAccount,
	domain.LevelSubAccount,
}

// LevelPolicy maps chart-of-account levels to code lengths. The mapping is
// convention-specific (e.g. the Colombian PUC uses 1/2/4/6) and therefore
// configuration, never a hard-coded constant at use sites.
type LevelPolicy struct {
	boundaries []int // ascending code lengths, index-aligned with levelOrder
}

// NewLevelPolicy builds a policy from ascending code-length boundaries.
// At least one boundary is required and there can be at most one per level.
func NewLevelPolicy(boundaries []int) (LevelPolicy, error) {
	if len(boundaries) == 0 {
		return LevelPolicy{}, fmt.Errorf("level policy requires at least one code length")
	}
	if len(boundaries) > len(levelOrder) {
		return LevelPolicy{}, fmt.Errorf("level policy supports at most %d levels, got %d", len(levelOrder), len(boundaries))
	}
	if !sort.IntsAreSorted(boundaries) {
		return LevelPolicy{}, fmt.Errorf("level policy code lengths must be ascending: %v", boundaries)
	}
	for i, b := range boundaries {
		if b <= 0 {
			return LevelPolicy{}, fmt.Errorf("level policy code lengths must be positive: %v", boundaries)
		}
		if i > 0 && boundaries[i-1] == b {
			return LevelPolicy{}, fmt.Errorf("level policy code lengths must be distinct: %v", boundaries)
		}
	}
	out := make([]int, len(boundaries))
	copy(out, boundaries)
	return LevelPolicy{boundaries: out}, nil
}

// DefaultLevelPolicy returns the 1/2/4/6 convention used by the PUC-style
// charts the application ships with.
func DefaultLevelPolicy() LevelPolicy {
	p, _ := NewLevelPolicy([]int{1, 2, 4, 6})
	return p
}

// ParseLevelPolicy parses a comma-separated boundary list such as "1,2,4,6".
func ParseLevelPolicy(s string) (LevelPolicy, error) {
	parts := strings.Split(s, ",")
	boundaries := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return LevelPolicy{}, fmt.Errorf("invalid level boundary %q: %w", part, err)
		}
		boundaries = append(boundaries, n)
	}
	return NewLevelPolicy(boundaries)
}

// LevelForCode returns the depth class assigned to codes of this length.
// ok is false when the length matches no configured boundary.
func (p LevelPolicy) LevelForCode(code string) (domain.AccountLevel, bool) {
	for i, b := range p.boundaries {
		if len(code) == b {
			return levelOrder[i], true
		}
	}
	return "", false
}

// ParentCodeLength returns the code length expected of the parent of an
// account with the given code. ok is false for top-level codes and for codes
// whose length matches no boundary (the caller treats those as roots).
func (p LevelPolicy) ParentCodeLength(code string) (int, bool) {
	for i, b := range p.boundaries {
		if len(code) == b {
			if i == 0 {
				return 0, false
			}
			return p.boundaries[i-1], true
		}
	}
	return 0, false
}

// Boundaries returns a copy of the configured code lengths.
func (p LevelPolicy) Boundaries() []int {
	out := make([]int, len(p.boundaries))
	copy(out, p.boundaries)
	return out
}
