package document

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_Plain(t *testing.T) {
	text, err := ExtractText("text/plain; charset=utf-8", []byte("Python, SQL"))
	require.NoError(t, err)
	assert.Equal(t, "Python, SQL", text)
}

func TestExtractText_Docx(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Senior Engineer</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Python &amp; AWS</w:t></w:r><w:r><w:t xml:space="preserve"> with Kubernetes</w:t></w:r></w:p>`)

	text, err := ExtractText(MIMEDocx, data)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer\nPython & AWS with Kubernetes", text)
}

func TestExtractText_Errors(t *testing.T) {
	_, err := ExtractText("image/png", []byte{0x89})
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.MIME)

	_, err = ExtractText(MIMEPDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ExtractText(MIMEDocx, []byte("not a zip"))
	assert.Error(t, err)
}

func TestMIMEFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "resume.txt", want: MIMEText},
		{name: "resume", want: MIMEText},
		{name: "Resume.PDF", want: MIMEPDF},
		{name: "cv.docx", want: MIMEDocx},
		{name: "archive.unknownext", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MIMEFromName(tt.name))
		})
	}
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Terraform"), 0o600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Terraform", text)

	_, err = ExtractFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestDocxPlainText(t *testing.T) {
	in := `<w:p><w:r><w:t>A</w:t></w:r></w:p><w:p></w:p><w:p></w:p><w:p></w:p><w:p><w:r><w:t>B</w:t><w:br/><w:t>C</w:t></w:r></w:p>`
	assert.Equal(t, "A\n\nB\nC", docxPlainText(in))
}
