package hierarchy

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"github.com/dcastano/contable_app/internal/core/domain"
)

// WarningCode classifies a data-quality anomaly found while building the
// index. Anomalies are never fatal: the affected account stays in the tree
// (as a root when its parent cannot be resolved) and the caller decides how
// to surface the warning.
type WarningCode string

const (
	WarnDuplicateCode   WarningCode = "DUPLICATE_CODE"
	WarnAmbiguousParent WarningCode = "AMBIGUOUS_PARENT"
	WarnOrphanAccount   WarningCode = "ORPHAN_ACCOUNT"
	WarnParentCycle     WarningCode = "PARENT_CYCLE"
)

// Warning reports one data-quality anomaly tied to a specific account.
type Warning struct {
	Code      WarningCode `json:"code"`
	AccountID string      `json:"accountID"`
	Detail    string      `json:"detail"`
}

// Options configures index construction.
type Options struct {
	Policy LevelPolicy  // level -> code-length table; zero value falls back to the default policy
	Locale language.Tag // collation locale; zero value falls back to Spanish
}

// CodeLookup maps an account code to the ids of the accounts carrying it,
// each id list sorted ascending. More than one id under a code is a data
// integrity problem that DeriveParent resolves deterministically.
type CodeLookup map[string][]string

// DeriveParent resolves the parent of an account. An explicit parent link is
// returned unchanged; otherwise the expected parent code is the prefix of the
// account's code at the length the policy assigns to the level above, and the
// unique account carrying that code is the parent. This is a single-step
// lookup, never a transitive walk.
//
// The returned parent id is empty when the account is a root. A non-nil
// warning flags ambiguity (duplicate parent codes, smallest id wins) or an
// orphan (expected parent code absent).
func DeriveParent(acct domain.Account, codes CodeLookup, policy LevelPolicy) (string, *Warning) {
	if acct.ParentAccountID != "" {
		return acct.ParentAccountID, nil
	}
	parentLen, ok := policy.ParentCodeLength(acct.Code)
	if !ok {
		// Top-level class or a code length outside the policy: a root.
		return "", nil
	}
	prefix := acct.Code[:parentLen]
	candidates := codes[prefix]
	switch len(candidates) {
	case 0:
		return "", &Warning{
			Code:      WarnOrphanAccount,
			AccountID: acct.AccountID,
			Detail:    fmt.Sprintf("no account with code %q exists for child %q", prefix, acct.Code),
		}
	case 1:
		return candidates[0], nil
	default:
		return candidates[0], &Warning{
			Code:      WarnAmbiguousParent,
			AccountID: acct.AccountID,
			Detail:    fmt.Sprintf("%d accounts share code %q; picked %s", len(candidates), prefix, candidates[0]),
		}
	}
}

// Index is an immutable snapshot of a chart of accounts arranged as a tree.
// Build it once per snapshot and reuse it across queries; all methods are
// read-only and safe for concurrent callers.
type Index struct {
	byID       map[string]domain.Account
	byCode     CodeLookup
	parentOf   map[string]string   // resolved parent id, "" for roots
	childrenOf map[string][]string // sorted ascending by the comparator
	roots      []string            // sorted ascending by the comparator
	policy     LevelPolicy
	warnings   []Warning
}

// BuildIndex arranges a flat account snapshot into a navigable tree. Parent
// links missing from the data are derived from codes per the level policy.
// The input slice is not retained or mutated.
func BuildIndex(accounts []domain.Account, opts Options) *Index {
	policy := opts.Policy
	if len(policy.boundaries) == 0 {
		policy = DefaultLevelPolicy()
	}
	locale := opts.Locale
	if locale == (language.Tag{}) {
		locale = language.Spanish
	}

	ix := &Index{
		byID:       make(map[string]domain.Account, len(accounts)),
		byCode:     make(CodeLookup, len(accounts)),
		parentOf:   make(map[string]string, len(accounts)),
		childrenOf: make(map[string][]string),
		policy:     policy,
	}

	for _, acct := range accounts {
		ix.byID[acct.AccountID] = acct
		ix.byCode[acct.Code] = append(ix.byCode[acct.Code], acct.AccountID)
	}
	// Map iteration order is random; sort duplicate codes so identical input
	// always yields identically ordered warnings.
	var duplicated []string
	for code, ids := range ix.byCode {
		sort.Strings(ids)
		if len(ids) > 1 {
			duplicated = append(duplicated, code)
		}
	}
	sort.Strings(duplicated)
	for _, code := range duplicated {
		ids := ix.byCode[code]
		ix.warnings = append(ix.warnings, Warning{
			Code:      WarnDuplicateCode,
			AccountID: ids[0],
			Detail:    fmt.Sprintf("code %q is carried by %d accounts", code, len(ids)),
		})
	}

	for _, acct := range accounts {
		parentID, warn := DeriveParent(acct, ix.byCode, policy)
		if warn != nil {
			ix.warnings = append(ix.warnings, *warn)
			if warn.Code == WarnOrphanAccount {
				parentID = ""
			}
		}
		if parentID == acct.AccountID {
			ix.warnings = append(ix.warnings, Warning{
				Code:      WarnParentCycle,
				AccountID: acct.AccountID,
				Detail:    "account references itself as parent; treated as root",
			})
			parentID = ""
		}
		if parentID != "" {
			if _, exists := ix.byID[parentID]; !exists {
				ix.warnings = append(ix.warnings, Warning{
					Code:      WarnOrphanAccount,
					AccountID: acct.AccountID,
					Detail:    fmt.Sprintf("parent %s does not exist; treated as root", parentID),
				})
				parentID = ""
			}
		}
		ix.parentOf[acct.AccountID] = parentID
		if parentID == "" {
			ix.roots = append(ix.roots, acct.AccountID)
		} else {
			ix.childrenOf[parentID] = append(ix.childrenOf[parentID], acct.AccountID)
		}
	}

	// Sort sibling lists once so traversal never re-sorts per call.
	cmp := newCodeComparator(locale)
	less := func(ids []string) func(i, j int) bool {
		return func(i, j int) bool {
			a, b := ix.byID[ids[i]], ix.byID[ids[j]]
			if c := cmp.compare(a.Code, b.Code); c != 0 {
				return c < 0
			}
			if c := cmp.compare(a.Name, b.Name); c != 0 {
				return c < 0
			}
			return ids[i] < ids[j]
		}
	}
	sort.SliceStable(ix.roots, less(ix.roots))
	for _, ids := range ix.childrenOf {
		sort.SliceStable(ids, less(ids))
	}
	return ix
}

// Account returns the account with the given id.
func (ix *Index) Account(id string) (domain.Account, bool) {
	acct, ok := ix.byID[id]
	return acct, ok
}

// Parent returns the resolved parent id of an account, empty for roots.
func (ix *Index) Parent(id string) string {
	return ix.parentOf[id]
}

// Children returns the sorted child ids of an account.
func (ix *Index) Children(id string) []string {
	return ix.childrenOf[id]
}

// Roots returns the sorted ids of accounts without a resolvable parent.
func (ix *Index) Roots() []string {
	return ix.roots
}

// Len returns the number of indexed accounts.
func (ix *Index) Len() int {
	return len(ix.byID)
}

// Warnings returns the data-quality anomalies found while building.
func (ix *Index) Warnings() []Warning {
	return ix.warnings
}

// Ancestors returns the parent chain of an account, nearest first, up to the
// root. A visited guard keeps malformed parent links from looping forever.
func (ix *Index) Ancestors(id string) []string {
	var chain []string
	seen := map[string]bool{id: true}
	for cur := ix.parentOf[id]; cur != ""; cur = ix.parentOf[cur] {
		if seen[cur] {
			break
		}
		seen[cur] = true
		chain = append(chain, cur)
	}
	return chain
}
