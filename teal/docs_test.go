package teal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentation_CommitMergesSameName(t *testing.T) {
	var d Documentation
	d.Document("a")
	d.Commit("x")
	d.Document("b")
	d.Commit("x")

	got, ok := d.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "a\nb", got)
	assert.Equal(t, []string{"x"}, d.Keys())
}

func TestDocumentation_PendingJoinsAndResets(t *testing.T) {
	var d Documentation
	d.Document("first")
	d.Document("second")

	pending, ok := d.Pending()
	assert.True(t, ok)
	assert.Equal(t, "first\nsecond", pending)

	d.Commit("m")
	_, ok = d.Pending()
	assert.False(t, ok)

	d.Commit("n")
	_, ok = d.Lookup("n")
	assert.False(t, ok, "commit without pending text must not create an entry")
}

func TestDocumentation_TypeDocIsSeparate(t *testing.T) {
	var d Documentation
	d.DocumentType("type one")
	d.Document("member")
	d.DocumentType("type two")
	d.Commit("m")

	assert.Equal(t, "type one\ntype two", d.TypeDoc())
	got, _ := d.Lookup("m")
	assert.Equal(t, "member", got)
}

func TestDocumentation_KeysKeepCommitOrder(t *testing.T) {
	var d Documentation
	for _, name := range []string{"zeta", "alpha", "mid", "alpha"} {
		d.Document("doc " + name)
		d.Commit(name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, d.Keys())
}

func TestDocumentation_Help(t *testing.T) {
	var d Documentation
	d.DocumentType("A 2D vector.")
	d.Document("Length of the vector.")
	d.Commit("len")
	d.Document("Normalized copy.")
	d.Commit("unit")

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"listing", "", "A 2D vector.\n\nThe following items have documentation:\nlen\nunit"},
		{"known key", "unit", "Normalized copy."},
		{"missing key", "nope", NoDocumentation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Help(tt.key))
		})
	}
}

func TestWriteComment(t *testing.T) {
	var b strings.Builder
	writeComment(&b, "\t\t", "one\ntwo")
	assert.Equal(t, "\t\t--one\n\t\t--two\n", b.String())

	b.Reset()
	writeComment(&b, "\t", "")
	assert.Empty(t, b.String())
}
