package escape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;&amp;", Text("<b>&"))
	assert.Equal(t, "", Text(""))
	assert.Equal(t, `say "hi" it's`, Text(`say "hi" it's`))
	assert.Equal(t, "&amp;amp;", Text("&amp;"))
}

func TestAttr(t *testing.T) {
	assert.Equal(t, "a&quot;b&#39;c", Attr(`a"b'c`))
	assert.Equal(t, "&lt;x y=&quot;1&quot;&gt;", Attr(`<x y="1">`))
	assert.Equal(t, "", Attr(""))
}
