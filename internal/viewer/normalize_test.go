package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"....//app/flag.txt", "..//app/flag.txt"},
		{"%2e%2e%2fapp%2fflag.txt", "../app/flag.txt"},
		{`..\\app\flag.txt`, "../app/flag.txt"},
		{"a////b", "a/b"},
		{"A/./B", "a/b"},
		{"......", "../"},
		{"...", "..."},
		{"%2E%2E%2F", "../"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "AB", Unquote("%41%42"))
	assert.Equal(t, "%zz", Unquote("%zz"))
	assert.Equal(t, "100%", Unquote("100%"))
	assert.Equal(t, "%4", Unquote("%4"))
	assert.Equal(t, "a+b", Unquote("a+b"))
	assert.Equal(t, "\uFFFD", Unquote("%ff"))
	assert.Equal(t, "é", Unquote("%C3%A9"))
}

func TestMatchesBypass(t *testing.T) {
	assert.True(t, MatchesBypass("../app/flag.txt"))
	assert.True(t, MatchesBypass("x/app/flag.txt.bak"))
	assert.False(t, MatchesBypass("../flag.txt"))
	assert.False(t, MatchesBypass("app/flag.tx"))
}

func TestIsTrivialFlagRequest(t *testing.T) {
	for _, raw := range []string{"flag.txt", "/flag.txt", "./flag.txt", "FLAG.txt", `\\flag.txt`, "flag.txt?", " /flag.txt "} {
		assert.True(t, IsTrivialFlagRequest(raw), raw)
	}
	for _, raw := range []string{"flag.txt.bak", "app/flag.txt", "../flag.txt", "", "flag"} {
		assert.False(t, IsTrivialFlagRequest(raw), raw)
	}
}

func TestIsNaiveTraversal(t *testing.T) {
	assert.True(t, IsNaiveTraversal("../etc/passwd"))
	assert.False(t, IsNaiveTraversal("../APP/FLAG.TXT"))
	assert.False(t, IsNaiveTraversal(`..\etc\passwd`))
	assert.False(t, IsNaiveTraversal("etc/passwd"))
}
