package attachment

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 占位图对任意输入都必须是合法的 XML
func assertValidSVG(t *testing.T, body []byte) {
	t.Helper()

	var node struct {
		XMLName xml.Name
	}
	require.NoError(t, xml.Unmarshal(body, &node))
	assert.Equal(t, "svg", node.XMLName.Local)
}

func TestNotFoundPlaceholder(t *testing.T) {
	body := NotFoundPlaceholder(7, 99)

	assertValidSVG(t, body)
	assert.Contains(t, string(body), "Asset: 7")
	assert.Contains(t, string(body), "Image: 99")
}

func TestEmptyBlobPlaceholder(t *testing.T) {
	t.Run("with name", func(t *testing.T) {
		body := EmptyBlobPlaceholder("server-rack.jpg")
		assertValidSVG(t, body)
		assert.Contains(t, string(body), "server-rack.jpg")
	})

	t.Run("without name", func(t *testing.T) {
		body := EmptyBlobPlaceholder("")
		assertValidSVG(t, body)
		assert.Contains(t, string(body), "No image data")
	})
}

func TestInvalidIDPlaceholder(t *testing.T) {
	body := InvalidIDPlaceholder("abc", "xyz")

	assertValidSVG(t, body)
	assert.Contains(t, string(body), "Invalid IDs")
	assert.Contains(t, string(body), "abc")
	assert.Contains(t, string(body), "xyz")
}

// 恶意 ID 字符串必须被转义，不能把标记注入 SVG
func TestInvalidIDPlaceholder_EscapesMarkup(t *testing.T) {
	body := InvalidIDPlaceholder(`<script>alert(1)</script>`, `"><rect/>`)

	assertValidSVG(t, body)
	assert.NotContains(t, string(body), "<script>")
}

func TestErrorPlaceholder(t *testing.T) {
	body := ErrorPlaceholder()

	assertValidSVG(t, body)
	assert.Contains(t, string(body), "Image unavailable")
}
