package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestCSVRenderer_Progress(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVRenderer{}.Render(context.Background(), &buf, progressReport()))

	want := "Name,Email address,Welcome,Welcome completion date,Quiz 1,Quiz 1 completion date," +
		"\"Essay, draft\",\"Essay, draft completion date\"\n" +
		"Ann Lee,ann@example.com,Completed,\"5 March 2024, 2:30 PM\",Not completed,,Not completed,\n" +
		"Bob Ray,bob@example.com,Completed,\"5 March 2024, 2:30 PM\",Completed,\"5 March 2024, 2:30 PM\",Completed,\"5 March 2024, 2:30 PM\"\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVRenderer_CompletionSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVRenderer{}.Render(context.Background(), &buf, completionReport()))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Quiz 1,Quiz 1 completion date,Essay,Essay completion date,Course complete,Course complete completion date", string(lines[0]))
	assert.Equal(t, "Bob Ray,Not completed,,Not completed,,,", string(lines[2]))
}

func TestExcelCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := ExcelCSVRenderer{}
	require.NoError(t, r.Render(context.Background(), &buf, completionReport()))

	raw := buf.Bytes()
	require.True(t, len(raw) > 2)
	assert.Equal(t, []byte{0xFF, 0xFE}, raw[:2], "UTF-16LE byte order mark")

	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "Name\tQuiz 1\tQuiz 1 completion date\t")
	assert.Contains(t, string(decoded), "Ann Lee\tCompleted\t5 March 2024, 2:30 PM\t")

	assert.Equal(t, "csv", r.Extension())
	assert.Contains(t, r.ContentType(), "UTF-16LE")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONRenderer{}.Render(context.Background(), &buf, progressReport()))

	assert.Contains(t, buf.String(), `"kind": "progress"`)
	assert.Contains(t, buf.String(), `"fullname": "Ann Lee"`)
}
