package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
)

func TestExtractPlainText(t *testing.T) {
	out, err := New().Extract("contract.TXT", []byte("This Agreement is made"))
	require.NoError(t, err)
	assert.Equal(t, "This Agreement is made", out)
}

func TestExtractReplacesInvalidUTF8(t *testing.T) {
	out, err := New().Extract("a.txt", []byte{'o', 'k', 0xff})
	require.NoError(t, err)
	assert.Equal(t, "ok�", out)
}

func TestExtractUnsupported(t *testing.T) {
	for _, name := range []string{"contract.docx", "contract.doc", "image.png"} {
		_, err := New().Extract(name, []byte("binary"))
		assert.ErrorIs(t, err, analysis.ErrUnsupportedFormat, name)
	}
}

func TestExtractBrokenPDF(t *testing.T) {
	_, err := New().Extract("contract.pdf", []byte("not a pdf"))
	assert.Error(t, err)
}
