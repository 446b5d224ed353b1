package junit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinPath(t *testing.T) {
	assert.Equal(t, `\Suite1`, JoinPath("", "Suite1"))
	assert.Equal(t, `\Suite1\Nested`, JoinPath(`\Suite1`, "Nested"))
}

func TestSuiteMap_PreservesInsertionOrder(t *testing.T) {
	sm := NewSuiteMap()
	sm.Set(`\b`, NewSuite("b", `\b`))
	sm.Set(`\a`, NewSuite("a", `\a`))
	sm.Set(`\c`, NewSuite("c", `\c`))

	replacement := NewSuite("a2", `\a`)
	sm.Set(`\a`, replacement)

	assert.Equal(t, []string{`\b`, `\a`, `\c`}, sm.Paths())
	got, ok := sm.Get(`\a`)
	assert.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 3, sm.Len())
}

func TestSuiteMap_NilIsEmpty(t *testing.T) {
	var sm *SuiteMap

	assert.Equal(t, 0, sm.Len())
	assert.False(t, sm.Has(`\x`))
	assert.Empty(t, sm.Paths())
	assert.Equal(t, 0, sm.CaseCount())
}

func TestSuiteMap_CaseCountIsRecursive(t *testing.T) {
	root := NewSuite("root", `\root`)
	root.Cases = []*Case{{Name: "a"}}
	child := NewSuite("child", `\root\child`)
	child.Cases = []*Case{{Name: "b"}, {Name: "c"}}
	root.AddChild(child)

	sm := NewSuiteMap()
	sm.Set(root.Path, root)

	assert.Equal(t, 3, sm.CaseCount())
}

func TestSuite_AddChildOnZeroValue(t *testing.T) {
	s := &Suite{Name: "zero"}
	s.AddChild(NewSuite("c", `\zero\c`))

	assert.True(t, s.Children.Has(`\zero\c`))
}
