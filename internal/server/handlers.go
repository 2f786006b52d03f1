package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cleared-dev/rgs/internal/accounts"
	"github.com/cleared-dev/rgs/internal/audit"
	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/render"
	"github.com/cleared-dev/rgs/internal/report"
	"github.com/cleared-dev/rgs/internal/statements"
)

type auditResponse struct {
	Clean    bool            `json:"clean"`
	Findings []audit.Finding `json:"findings"`
}

func (s *Server) build(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	rep, _, err := s.builder.BuildFrom(r.Context(), s.source)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return nil, false
	}
	return rep, true
}

// listChart returns the catalog, optionally narrowed with ?entity=bv.
func (s *Server) listChart(w http.ResponseWriter, r *http.Request) {
	accts, err := s.source.Accounts(r.Context())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	if entity := r.URL.Query().Get("entity"); entity != "" {
		accts = accounts.NewService(accts).ApplicableTo(model.EntityType(entity))
	}
	if accts == nil {
		accts = []model.Account{}
	}
	writeJSON(w, http.StatusOK, accts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	accts, err := s.source.Accounts(r.Context())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	code := chi.URLParam(r, "code")
	acct, ok := accounts.NewService(accts).Get(code)
	if !ok {
		writeError(w, http.StatusNotFound, "account not found: "+code)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.build(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, render.TreeNodes(rep.Forest()))
}

func (s *Server) listStatements(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.build(w, r)
	if !ok {
		return
	}
	out := make(map[statements.Kind]render.Line, len(statements.Kinds))
	for _, k := range statements.Kinds {
		n, _ := rep.Statements.ByKind(k)
		out[k] = render.Lines(n)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getStatement(w http.ResponseWriter, r *http.Request) {
	kind, err := statements.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	rep, ok := s.build(w, r)
	if !ok {
		return
	}
	n, _ := rep.Statements.ByKind(kind)
	writeJSON(w, http.StatusOK, render.Lines(n))
}

func (s *Server) getAudit(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.build(w, r)
	if !ok {
		return
	}
	findings := rep.Findings
	if findings == nil {
		findings = []audit.Finding{}
	}
	writeJSON(w, http.StatusOK, auditResponse{Clean: rep.Clean(), Findings: findings})
}
