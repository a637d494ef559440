package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parametriclab/nodeflow/pkg/document"
	nferrors "github.com/parametriclab/nodeflow/pkg/errors"
	"github.com/parametriclab/nodeflow/pkg/graph"
	"github.com/parametriclab/nodeflow/pkg/pipeline"
	"github.com/parametriclab/nodeflow/pkg/store"
)

// graphRequest is the body of graph create and update calls.
type graphRequest struct {
	Name     string            `json:"name,omitempty"`
	Document document.Document `json:"document"`
}

// problemInfo is the JSON shape of one validation problem.
type problemInfo struct {
	NodeID  string `json:"nodeId,omitempty"`
	Port    string `json:"port,omitempty"`
	Message string `json:"message"`
}

func toProblemInfos(problems []graph.Problem) []problemInfo {
	infos := make([]problemInfo, 0, len(problems))
	for _, p := range problems {
		infos = append(infos, problemInfo{NodeID: p.NodeID, Port: p.Port, Message: p.Message})
	}
	return infos
}

// decodeJSON decodes a request body. An empty body is tolerated when
// optional is set.
func decodeJSON(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return nferrors.Wrap(nferrors.ErrCodeInvalidInput, err, "invalid request body")
}

// wrapStoreErr converts store sentinel errors into coded errors.
func wrapStoreErr(err error, name string) error {
	if errors.Is(err, store.ErrNotFound) {
		return nferrors.Wrap(nferrors.ErrCodeGraphNotFound, err, "graph %q not found", name)
	}
	return nferrors.Wrap(nferrors.ErrCodeStore, err, "store access failed")
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.runner.Store.List(r.Context())
	if err != nil {
		s.respondError(w, nferrors.Wrap(nferrors.ErrCodeStore, err, "list graphs"))
		return
	}
	if names == nil {
		names = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"graphs": names,
		"count":  len(names),
	})
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.respondError(w, err)
		return
	}
	if err := nferrors.ValidateGraphName(req.Name); err != nil {
		s.respondError(w, err)
		return
	}

	ctx := r.Context()
	if _, err := s.runner.Store.Get(ctx, req.Name); err == nil {
		s.respondError(w, nferrors.New(nferrors.ErrCodeAlreadyExists, "graph %q already exists", req.Name))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		s.respondError(w, wrapStoreErr(err, req.Name))
		return
	}

	if err := s.runner.Store.Put(ctx, store.Record{Name: req.Name, Document: req.Document}); err != nil {
		s.respondError(w, wrapStoreErr(err, req.Name))
		return
	}

	rec, err := s.runner.Store.Get(ctx, req.Name)
	if err != nil {
		s.respondError(w, wrapStoreErr(err, req.Name))
		return
	}
	s.respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rec, err := s.runner.Store.Get(r.Context(), name)
	if err != nil {
		s.respondError(w, wrapStoreErr(err, name))
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := nferrors.ValidateGraphName(name); err != nil {
		s.respondError(w, err)
		return
	}

	var req graphRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.respondError(w, err)
		return
	}

	ctx := r.Context()
	if err := s.runner.Store.Put(ctx, store.Record{Name: name, Document: req.Document}); err != nil {
		s.respondError(w, wrapStoreErr(err, name))
		return
	}

	rec, err := s.runner.Store.Get(ctx, name)
	if err != nil {
		s.respondError(w, wrapStoreErr(err, name))
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.runner.Store.Delete(r.Context(), name); err != nil {
		s.respondError(w, wrapStoreErr(err, name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleValidateGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := s.runner.Load(r.Context(), pipeline.Options{Name: name, Logger: s.logger})
	if err != nil {
		s.respondError(w, err)
		return
	}

	problems := s.runner.Check(g)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"valid":    len(problems) == 0,
		"problems": toProblemInfos(problems),
	})
}

// executeRequest is the optional body of an execute call.
type executeRequest struct {
	Force bool `json:"force,omitempty"`
	Env   any  `json:"env,omitempty"`
}

// executeResponse reports one graph run.
type executeResponse struct {
	Succeeded bool               `json:"succeeded"`
	Problems  []problemInfo      `json:"problems"`
	NodeRuns  []pipeline.NodeRun `json:"nodeRuns"`
	Stats     statsInfo          `json:"stats"`
	Error     string             `json:"error,omitempty"`
}

// statsInfo is the JSON shape of the pipeline stats.
type statsInfo struct {
	NodeCount       int    `json:"nodeCount"`
	ConnectionCount int    `json:"connectionCount"`
	LoadTime        string `json:"loadTime"`
	RunTime         string `json:"runTime"`
}

func toStatsInfo(st pipeline.Stats) statsInfo {
	return statsInfo{
		NodeCount:       st.NodeCount,
		ConnectionCount: st.ConnectionCount,
		LoadTime:        st.LoadTime.String(),
		RunTime:         st.RunTime.String(),
	}
}

func (s *Server) handleExecuteGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req executeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		s.respondError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Name:   name,
		Force:  req.Force,
		Env:    req.Env,
		Logger: s.logger,
	})
	if err != nil {
		// A validation abort still carries the problems; surface them so
		// the client can show what to fix.
		if nferrors.Is(err, nferrors.ErrCodeGraphInvalid) && result != nil {
			s.respondJSON(w, http.StatusUnprocessableEntity, executeResponse{
				Problems: toProblemInfos(result.Problems),
				NodeRuns: []pipeline.NodeRun{},
				Stats:    toStatsInfo(result.Stats),
				Error:    nferrors.UserMessage(err),
			})
			return
		}
		s.respondError(w, err)
		return
	}

	nodeRuns := result.NodeRuns
	if nodeRuns == nil {
		nodeRuns = []pipeline.NodeRun{}
	}
	s.respondJSON(w, http.StatusOK, executeResponse{
		Succeeded: result.Succeeded,
		Problems:  toProblemInfos(result.Problems),
		NodeRuns:  nodeRuns,
		Stats:     toStatsInfo(result.Stats),
	})
}

func (s *Server) handleRenderGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = nferrors.FormatSVG
	}
	if err := nferrors.ValidateRenderFormat(format); err != nil {
		s.respondError(w, err)
		return
	}
	detailed := r.URL.Query().Get("detailed") == "true" || r.URL.Query().Get("detailed") == "1"

	g, err := s.runner.Load(r.Context(), pipeline.Options{Name: name, Logger: s.logger})
	if err != nil {
		s.respondError(w, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), g, pipeline.Options{
		Formats:  []string{format},
		Detailed: detailed,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	switch format {
	case nferrors.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	case nferrors.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifacts[format]); err != nil {
		s.logger.Error("write artifact", "error", err)
	}
}
