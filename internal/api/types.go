package api

import (
	"net/http"

	"github.com/parametriclab/nodeflow/pkg/registry"
)

// typeInfo describes one registered node kind.
type typeInfo struct {
	TypeName    string `json:"typeName"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
}

// categoryInfo groups the kinds of one category.
type categoryInfo struct {
	Name  string     `json:"name"`
	Types []typeInfo `json:"types"`
}

func toTypeInfos(regs []registry.Registration) []typeInfo {
	infos := make([]typeInfo, 0, len(regs))
	for _, r := range regs {
		infos = append(infos, typeInfo{
			TypeName:    r.TypeName,
			DisplayName: r.DisplayName,
			Category:    r.Category,
		})
	}
	return infos
}

func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	reg := s.runner.Registry
	categories := make([]categoryInfo, 0)
	for _, name := range reg.Categories() {
		categories = append(categories, categoryInfo{
			Name:  name,
			Types: toTypeInfos(reg.ByCategory(name)),
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"count":      len(reg.Types()),
	})
}

func (s *Server) handleSearchTypes(w http.ResponseWriter, r *http.Request) {
	matches := toTypeInfos(s.runner.Registry.Search(r.URL.Query().Get("q")))
	s.respondJSON(w, http.StatusOK, map[string]any{
		"types": matches,
		"count": len(matches),
	})
}
