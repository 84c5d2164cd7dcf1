package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeAngles(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;x&lt;/script&gt;", EscapeAngles("<script>x</script>"))
	assert.Equal(t, `a & "b"`, EscapeAngles(`a & "b"`))
}

func TestPreBlock(t *testing.T) {
	assert.Equal(t, "<pre>picoCTF{x}</pre>", PreBlock("picoCTF{x}"))
	assert.Equal(t, "<pre>&lt;b&gt;</pre>", PreBlock("<b>"))
	assert.Equal(t, "<pre></pre>", PreBlock(""))
}
