package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aretw0/ucanfire/internal/dto"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/aretw0/ucanfire/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

//go:embed templates/*.html
var templateFS embed.FS

func parsePages() *template.Template {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type startPageData struct {
	Title string
	View  dto.View
	Total int
}

type stagePageData struct {
	Title    string
	Stage    domain.Stage
	Variants []string
}

// StartPage handles GET / and GET /start.html. It shows the session named by
// the session query parameter. Without a stored session the first question is
// rendered and nothing is saved until the first answer is posted.
func (s *Server) StartPage(w http.ResponseWriter, r *http.Request) {
	view, found, err := s.lookupSession(r, r.URL.Query().Get("session"))
	if err != nil {
		s.writePageError(w, err)
		return
	}
	if !found {
		view, err = s.blankView()
		if err != nil {
			s.writePageError(w, err)
			return
		}
	}
	s.renderStart(w, http.StatusOK, view)
}

// SubmitStart handles POST /start.html with the form fields session, choice
// and restart, then redirects back to the page (post/redirect/get).
//
// An empty session field means the visitor answered the unsaved first
// question, so a session is created and the choice applied. A session that
// is no longer stored (expired or deleted) is started over without applying
// the choice, since it was meant for a question of the lost session.
func (s *Server) SubmitStart(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.maxInput))
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	formID := r.PostForm.Get("session")
	view, found, err := s.lookupSession(r, formID)
	if err != nil {
		s.writePageError(w, err)
		return
	}
	restart := r.PostForm.Get("restart") != ""

	var choice domain.Choice
	answering := !restart && r.PostForm.Has("choice")
	if answering {
		choice, err = s.parseChoice(r.PostForm.Get("choice"))
		if err != nil {
			if !found {
				if view, err = s.blankView(); err != nil {
					s.writePageError(w, err)
					return
				}
			}
			s.renderStart(w, http.StatusBadRequest, view)
			return
		}
	}

	if !found {
		view, err = s.sessions.Start(r.Context(), uuid.NewString())
		if err != nil {
			s.writePageError(w, err)
			return
		}
		if formID != "" {
			s.logger.Info("stale session in form, started over", "session_id", formID, "new_session_id", view.State.SessionID)
			answering = false
		}
	}
	id := view.State.SessionID

	switch {
	case restart && found:
		view, err = s.sessions.Restart(r.Context(), id)
	case answering:
		view, _, err = s.sessions.Answer(r.Context(), id, choice)
	}
	if err != nil {
		s.writePageError(w, err)
		return
	}

	http.Redirect(w, r, "start.html?session="+url.QueryEscape(view.State.SessionID), http.StatusSeeOther)
}

// lookupSession loads id when it names a stored session. found is false for
// an empty, malformed or unknown id.
func (s *Server) lookupSession(r *http.Request, id string) (session.View, bool, error) {
	if id == "" || !sessionIDPattern.MatchString(id) {
		return session.View{}, false, nil
	}
	view, err := s.sessions.Current(r.Context(), id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return session.View{}, false, nil
	}
	if err != nil {
		return session.View{}, false, err
	}
	return view, true, nil
}

// blankView is the unsaved first question shown before any answer.
func (s *Server) blankView() (session.View, error) {
	q, err := s.table.Question(0)
	if err != nil {
		return session.View{}, err
	}
	return session.View{State: domain.NewState(""), Question: q}, nil
}

func (s *Server) renderStart(w http.ResponseWriter, status int, view session.View) {
	s.renderPage(w, status, "start.html", startPageData{
		Title: "U CAN FIRE Stage Questionnaire",
		View:  dto.NewView(view),
		Total: s.table.Len(),
	})
}

// StagePage handles GET /stages/stage{id}.html.
func (s *Server) StagePage(w http.ResponseWriter, r *http.Request) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id < questionnaire.MinStageID || id > questionnaire.MaxStageID {
		http.NotFound(w, r)
		return
	}

	data := stagePageData{Stage: domain.Stage{ID: id, Name: "Stage " + strconv.Itoa(id)}}
	for _, st := range s.table.Stages() {
		if st.ID != id {
			continue
		}
		if len(data.Variants) == 0 {
			data.Stage = st
		}
		data.Variants = append(data.Variants, st.Name)
	}
	if len(data.Variants) < 2 {
		data.Variants = nil
	}
	data.Title = data.Stage.Name
	s.renderPage(w, http.StatusOK, "stage.html", data)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed", "template", name, "err", err)
	}
}

func (s *Server) writePageError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("page request failed", "err", err)
	}
	http.Error(w, http.StatusText(status), status)
}
