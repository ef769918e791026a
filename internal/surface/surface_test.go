package surface

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/dialobserver"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/sink"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/telephone"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestTelephone(t *testing.T, s sink.Sink) *telephone.Telephone {
	tel := telephone.New(log.NewContext(log.NewNopLogger()))
	require.Nil(t, tel.AddObserver(dialobserver.NewOperationLogger(s)))
	require.Nil(t, tel.AddObserver(dialobserver.NewDialingMessageLogger(s)))
	return tel
}

func Test_bindings_TrimAndFoldInput(t *testing.T) {
	tel := newTestTelephone(t, sink.NewHTMLSink())
	b := NewTelephoneBindings(tel)

	b.Add("  １２３ ")
	require.True(t, tel.HasNumber("123"))

	b.Remove("123\t")
	require.False(t, tel.HasNumber("123"))
}

func Test_bindings_BlankInputIgnored(t *testing.T) {
	out := sink.NewHTMLSink()
	tel := newTestTelephone(t, out)
	b := NewTelephoneBindings(tel)

	b.Add("   ")
	require.Empty(t, tel.Numbers())
	require.Nil(t, b.Dial(""))
	require.Equal(t, "", out.HTML())
}

func Test_console_Session(t *testing.T) {
	var out bytes.Buffer
	tel := newTestTelephone(t, sink.NewWriterSink(&out))
	in := strings.NewReader(strings.Join([]string{
		"add 111",
		"add 222",
		"dial 111",
		"dial 333",
		"remove 111",
		"list",
		"bogus",
		"quit",
		"add 444",
	}, "\n"))

	require.Nil(t, NewConsole(log.NewContext(log.NewNopLogger()), NewTelephoneBindings(tel), in, &out).Run())

	got := out.String()
	require.Contains(t, got, "Phone number dialed: 111\nNow Dialing 111\n")
	require.NotContains(t, got, "333")
	require.Contains(t, got, "> 222\n")
	require.Contains(t, got, `unknown command "bogus"`)
	require.Equal(t, []types.PhoneNumber{"222"}, tel.Numbers())
}

func Test_console_Help(t *testing.T) {
	var out bytes.Buffer
	tel := newTestTelephone(t, sink.NewWriterSink(&out))

	require.Nil(t, NewConsole(log.NewContext(log.NewNopLogger()), NewTelephoneBindings(tel), strings.NewReader("help\n"), &out).Run())
	require.Contains(t, out.String(), "dial <number>")
}

type failingBindings struct{}

func (failingBindings) Add(string)        {}
func (failingBindings) Remove(string)     {}
func (failingBindings) Dial(string) error { return errors.New("line busy") }

func Test_console_DialErrorIsShown(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(log.NewContext(log.NewNopLogger()), failingBindings{}, strings.NewReader("dial 1\nlist\n"), &out)

	require.Nil(t, c.Run())
	require.Contains(t, out.String(), "error: line busy")
	require.Contains(t, out.String(), "listing numbers is not supported")
}

func postForm(t *testing.T, h http.Handler, path, number string) *httptest.ResponseRecorder {
	form := url.Values{numberField: {number}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func Test_server_AddDialRemove(t *testing.T) {
	output := sink.NewHTMLSink()
	tel := newTestTelephone(t, output)
	srv := NewServer(log.NewContext(log.NewNopLogger()), NewTelephoneBindings(tel), output)

	rec := postForm(t, srv, "/numbers", "111")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
	require.True(t, tel.HasNumber("111"))

	rec = postForm(t, srv, "/dial", "111")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = postForm(t, srv, "/dial", "999")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = get(srv, "/output")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<p>Phone number dialed: 111</p><p>Now Dialing 111</p>", rec.Body.String())

	rec = get(srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `<div id="output"><p>Phone number dialed: 111</p><p>Now Dialing 111</p></div>`)

	rec = postForm(t, srv, "/numbers/remove", "111")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.False(t, tel.HasNumber("111"))
}

func Test_server_ClearOutput(t *testing.T) {
	output := sink.NewHTMLSink()
	tel := newTestTelephone(t, output)
	tel.AddNumber("111")
	srv := NewServer(log.NewContext(log.NewNopLogger()), NewTelephoneBindings(tel), output)

	postForm(t, srv, "/dial", "111")
	require.NotEmpty(t, get(srv, "/output").Body.String())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/output/clear", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "", get(srv, "/output").Body.String())
}

func Test_server_ListNumbers(t *testing.T) {
	output := sink.NewHTMLSink()
	tel := newTestTelephone(t, output)
	tel.AddNumber("222")
	tel.AddNumber("111")
	srv := NewServer(log.NewContext(log.NewNopLogger()), NewTelephoneBindings(tel), output)

	rec := get(srv, "/numbers")
	require.Equal(t, http.StatusOK, rec.Code)
	var numbers []string
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &numbers))
	require.Equal(t, []string{"111", "222"}, numbers)
}

func Test_server_DialFailure(t *testing.T) {
	srv := NewServer(log.NewContext(log.NewNopLogger()), failingBindings{}, sink.NewHTMLSink())

	rec := postForm(t, srv, "/dial", "1")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "line busy")
}

func Test_server_MethodNotAllowed(t *testing.T) {
	srv := NewServer(log.NewContext(log.NewNopLogger()), failingBindings{}, sink.NewHTMLSink())

	rec := get(srv, "/dial")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
