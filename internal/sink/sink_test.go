package sink

import (
	"bytes"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type failingSink struct{}

func (failingSink) Append(string) error {
	return errors.New("closed")
}

func Test_logSink_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(log.NewContext(log.NewLogfmtLogger(&buf)))

	require.Nil(t, s.Append("Now Dialing 111"))
	require.Equal(t, "message=\"Now Dialing 111\"\n", buf.String())
}

func Test_writerSink_AppendsLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	require.Nil(t, s.Append("first"))
	require.Nil(t, s.Append("second"))
	require.Equal(t, "first\nsecond\n", buf.String())
}

func Test_htmlSink_RendersParagraphs(t *testing.T) {
	s := NewHTMLSink()

	require.Nil(t, s.Append("Phone number dialed: 111"))
	require.Nil(t, s.Append("Now Dialing 111"))
	require.Equal(t, "<p>Phone number dialed: 111</p><p>Now Dialing 111</p>", s.HTML())

	s.Reset()
	require.Equal(t, "", s.HTML())
}

func Test_htmlSink_KeepsMostRecentLines(t *testing.T) {
	s := NewBoundedHTMLSink(2)

	for _, line := range []string{"one", "two", "three"} {
		require.Nil(t, s.Append(line))
	}
	require.Equal(t, "<p>two</p><p>three</p>", s.HTML())
}

func Test_htmlSink_EscapesText(t *testing.T) {
	s := NewHTMLSink()

	require.Nil(t, s.Append("Now Dialing <script>alert(1)</script>"))
	require.Equal(t, "<p>Now Dialing &lt;script&gt;alert(1)&lt;/script&gt;</p>", s.HTML())
}

func Test_multi_AppendsToAllSinks(t *testing.T) {
	var first, second bytes.Buffer
	m := Multi{NewWriterSink(&first), failingSink{}, NewWriterSink(&second)}

	err := m.Append("line")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "closed")
	require.Equal(t, "line\n", first.String())
	require.Equal(t, "line\n", second.String())
}
