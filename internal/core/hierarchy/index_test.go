package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/hierarchy"
)

func acct(id, code, name string) domain.Account {
	return domain.Account{
		AccountID: id,
		Code:      code,
		Name:      name,
		Nature:    domain.NatureDebit,
		Status:    domain.StatusActive,
	}
}

// pucSample is a small PUC-style chart: class 1, group 11, accounts 1105 and
// 1110, sub-account 110505, plus a second class 4 with a credit nature.
func pucSample() []domain.Account {
	activo := acct("a-1", "1", "Activo")
	disponible := acct("a-11", "11", "Disponible")
	caja := acct("a-1105", "1105", "Caja")
	bancos := acct("a-1110", "1110", "Bancos")
	cajaGeneral := acct("a-110505", "110505", "Caja general")
	ingresos := acct("a-4", "4", "Ingresos")
	ingresos.Nature = domain.NatureCredit
	return []domain.Account{caja, activo, ingresos, cajaGeneral, disponible, bancos}
}

func TestNewLevelPolicy(t *testing.T) {
	_, err := hierarchy.NewLevelPolicy(nil)
	assert.Error(t, err)

	_, err = hierarchy.NewLevelPolicy([]int{2, 1})
	assert.Error(t, err)

	_, err = hierarchy.NewLevelPolicy([]int{1, 1, 4})
	assert.Error(t, err)

	_, err = hierarchy.NewLevelPolicy([]int{0, 2})
	assert.Error(t, err)

	p, err := hierarchy.NewLevelPolicy([]int{1, 2, 4, 6})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 6}, p.Boundaries())
}

func TestParseLevelPolicy(t *testing.T) {
	p, err := hierarchy.ParseLevelPolicy("1, 2, 4, 6")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 6}, p.Boundaries())

	_, err = hierarchy.ParseLevelPolicy("1,x")
	assert.Error(t, err)
}

func TestLevelPolicyLookups(t *testing.T) {
	p := hierarchy.DefaultLevelPolicy()

	level, ok := p.LevelForCode("1")
	require.True(t, ok)
	assert.Equal(t, domain.LevelClass, level)

	level, ok = p.LevelForCode("110505")
	require.True(t, ok)
	assert.Equal(t, domain.LevelSubAccount, level)

	_, ok = p.LevelForCode("110")
	assert.False(t, ok)

	// Parent lengths step down through the boundary table.
	n, ok := p.ParentCodeLength("110505")
	require.True(t, ok)
	assert.Equal(t, 4, n)

	n, ok = p.ParentCodeLength("1105")
	require.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = p.ParentCodeLength("11")
	require.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = p.ParentCodeLength("1")
	assert.False(t, ok)
}

func TestDeriveParentFromCode(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})

	// The scenario from the sample data: 1105 resolves under 11, 11 under 1.
	assert.Equal(t, "a-11", ix.Parent("a-1105"))
	assert.Equal(t, "a-1", ix.Parent("a-11"))
	assert.Equal(t, "a-1105", ix.Parent("a-110505"))
	assert.Equal(t, "", ix.Parent("a-1"))
	assert.Empty(t, ix.Warnings())
}

func TestDeriveParentExplicitLinkWins(t *testing.T) {
	child := acct("c", "1105", "Caja")
	child.ParentAccountID = "elsewhere"
	codes := hierarchy.CodeLookup{"11": {"a-11"}}

	parent, warn := hierarchy.DeriveParent(child, codes, hierarchy.DefaultLevelPolicy())
	assert.Equal(t, "elsewhere", parent)
	assert.Nil(t, warn)
}

func TestDeriveParentOrphan(t *testing.T) {
	accounts := []domain.Account{
		acct("a-1", "1", "Activo"),
		acct("a-1105", "1105", "Caja"), // group 11 is missing
	}
	ix := hierarchy.BuildIndex(accounts, hierarchy.Options{})

	// The orphan becomes a root and is reported, not dropped.
	assert.Equal(t, "", ix.Parent("a-1105"))
	assert.ElementsMatch(t, []string{"a-1", "a-1105"}, ix.Roots())
	require.Len(t, ix.Warnings(), 1)
	assert.Equal(t, hierarchy.WarnOrphanAccount, ix.Warnings()[0].Code)
	assert.Equal(t, "a-1105", ix.Warnings()[0].AccountID)
}

func TestDeriveParentAmbiguousPicksSmallestID(t *testing.T) {
	accounts := []domain.Account{
		acct("z-dup", "11", "Disponible copia"),
		acct("a-dup", "11", "Disponible"),
		acct("a-1105", "1105", "Caja"),
	}
	ix := hierarchy.BuildIndex(accounts, hierarchy.Options{})

	assert.Equal(t, "a-dup", ix.Parent("a-1105"))

	var codes []hierarchy.WarningCode
	for _, w := range ix.Warnings() {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, hierarchy.WarnDuplicateCode)
	assert.Contains(t, codes, hierarchy.WarnAmbiguousParent)
}

func TestBuildIndexWarningsDeterministic(t *testing.T) {
	accounts := []domain.Account{
		acct("a-1", "1", "Activo"),
		acct("b-1", "1", "Activo copia"),
		acct("a-2", "2", "Pasivo"),
		acct("b-2", "2", "Pasivo copia"),
		acct("a-3", "3", "Patrimonio"),
		acct("b-3", "3", "Patrimonio copia"),
		acct("a-4", "4", "Ingresos"),
		acct("b-4", "4", "Ingresos copia"),
	}

	first := hierarchy.BuildIndex(accounts, hierarchy.Options{}).Warnings()
	require.Len(t, first, 4)
	for i, code := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, hierarchy.WarnDuplicateCode, first[i].Code)
		assert.Equal(t, "a-"+code, first[i].AccountID)
		assert.Contains(t, first[i].Detail, `"`+code+`"`)
	}
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, hierarchy.BuildIndex(accounts, hierarchy.Options{}).Warnings())
	}
}

func TestBuildIndexSelfParentBreaksCycle(t *testing.T) {
	loop := acct("a-loop", "9", "Bucle")
	loop.ParentAccountID = "a-loop"
	ix := hierarchy.BuildIndex([]domain.Account{loop}, hierarchy.Options{})

	assert.Equal(t, "", ix.Parent("a-loop"))
	require.Len(t, ix.Warnings(), 1)
	assert.Equal(t, hierarchy.WarnParentCycle, ix.Warnings()[0].Code)
}

func TestAncestors(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})

	assert.Equal(t, []string{"a-1105", "a-11", "a-1"}, ix.Ancestors("a-110505"))
	assert.Empty(t, ix.Ancestors("a-1"))
}

func TestChildrenSortedNumerically(t *testing.T) {
	accounts := []domain.Account{
		acct("a-1", "1", "Activo"),
		acct("a-100", "100", "Cien"),
		acct("a-10", "10", "Diez"),
		acct("a-2", "2", "Pasivo"),
	}
	// With a flat policy every account is a root; root order is comparator order.
	policy, err := hierarchy.NewLevelPolicy([]int{7})
	require.NoError(t, err)
	ix := hierarchy.BuildIndex(accounts, hierarchy.Options{Policy: policy})

	assert.Equal(t, []string{"a-1", "a-2", "a-10", "a-100"}, ix.Roots())
}
