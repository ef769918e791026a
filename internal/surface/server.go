package surface

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/sink"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

// numberField is the form field carrying the typed phone number.
const numberField = "number"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>Telephone</title></head>
<body>
<form method="post" action="/numbers">
  <input type="text" name="number" placeholder="Phone number">
  <button type="submit">Add Phone Number</button>
  <button type="submit" formaction="/numbers/remove">Remove Phone Number</button>
</form>
<form method="post" action="/dial">
  <input type="text" name="number" placeholder="Number to dial">
  <button type="submit">Dial Phone Number</button>
</form>
<form method="post" action="/output/clear">
  <button type="submit">Clear Output</button>
</form>
<div id="output">{{.Output}}</div>
</body>
</html>
`))

// Server is the page front end. Notification lines rendered by observers on
// the page sink show up in the output area.
type Server struct {
	b      Bindings
	output *sink.HTMLSink
	router *mux.Router

	// ctx is the logger context
	ctx *log.Context
}

func NewServer(ctx *log.Context, b Bindings, output *sink.HTMLSink) *Server {
	s := &Server{b: b, output: output, router: mux.NewRouter(), ctx: ctx}
	s.router.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	s.router.HandleFunc("/output", s.handleOutput).Methods(http.MethodGet)
	s.router.HandleFunc("/output/clear", s.handleClearOutput).Methods(http.MethodPost)
	s.router.HandleFunc("/numbers", s.handleListNumbers).Methods(http.MethodGet)
	s.router.HandleFunc("/numbers", s.handleAdd).Methods(http.MethodPost)
	s.router.HandleFunc("/numbers/remove", s.handleRemove).Methods(http.MethodPost)
	s.router.HandleFunc("/dial", s.handleDial).Methods(http.MethodPost)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The sink escapes every line it renders.
	data := struct{ Output template.HTML }{Output: template.HTML(s.output.HTML())}
	if err := page.Execute(w, data); err != nil {
		s.ctx.Log("event", "render page", "error", err)
	}
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.output.HTML()))
}

func (s *Server) handleClearOutput(w http.ResponseWriter, r *http.Request) {
	s.output.Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleListNumbers(w http.ResponseWriter, r *http.Request) {
	numbers := []types.PhoneNumber{}
	if lister, ok := s.b.(Lister); ok {
		numbers = append(numbers, lister.Numbers()...)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(numbers); err != nil {
		s.ctx.Log("event", "list numbers", "error", err)
	}
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	s.b.Add(r.FormValue(numberField))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.b.Remove(r.FormValue(numberField))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDial(w http.ResponseWriter, r *http.Request) {
	if err := s.b.Dial(r.FormValue(numberField)); err != nil {
		s.ctx.Log("event", "dial failed", "error", err)
		http.Error(w, "dial failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
