package workflow

import (
	"math"
	"strings"

	"gecapi/internal/model"
)

// Filter selects courriers for listing. Empty fields match everything.
type Filter struct {
	Flow     model.Flow
	Status   model.CourrierStatus
	Priority string
	EntityID string
	HolderID string
	Search   string
}

// Match reports whether c satisfies every non-empty criterion of f.
func (f Filter) Match(c *model.Courrier) bool {
	if f.Flow != "" && c.Flow != f.Flow {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Priority != "" && c.Metadata.Priorite != f.Priority {
		return false
	}
	if f.EntityID != "" {
		found := false
		for _, n := range c.Nodes {
			if n.EntityID == f.EntityID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.HolderID != "" && len(NodesForUser(c, f.HolderID)) == 0 {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(c.Metadata.Objet), q) &&
			!strings.Contains(strings.ToLower(c.Metadata.Expediteur), q) &&
			!strings.Contains(strings.ToLower(c.Number), q) {
			return false
		}
	}
	return true
}

// FilterCourriers returns the courriers matching f, preserving order.
func FilterCourriers(list []model.Courrier, f Filter) []model.Courrier {
	out := make([]model.Courrier, 0, len(list))
	for i := range list {
		if f.Match(&list[i]) {
			out = append(out, list[i])
		}
	}
	return out
}

// ActiveNodes returns the nodes currently holding the courrier.
func ActiveNodes(c *model.Courrier) []*model.Node {
	var out []*model.Node
	for i := range c.Nodes {
		if c.Nodes[i].IsActive() {
			out = append(out, &c.Nodes[i])
		}
	}
	return out
}

// NodesForUser returns the active nodes held by userID: the user's inbox
// for this courrier.
func NodesForUser(c *model.Courrier, userID string) []*model.Node {
	var out []*model.Node
	for _, n := range ActiveNodes(c) {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// ComputeStats aggregates dashboard counters. Urgent counts in-progress
// courriers with priority haute or urgente.
func ComputeStats(list []model.Courrier) model.Stats {
	var s model.Stats
	for _, c := range list {
		switch c.Flow {
		case model.FlowEntrant:
			s.CourriersEntrants++
		case model.FlowSortant:
			s.CourriersSortants++
		}
		switch c.Status {
		case model.CourrierInProgress:
			s.CourriersEnCours++
			if c.Metadata.Priorite == model.PriorityUrgente || c.Metadata.Priorite == model.PriorityHaute {
				s.CourriersUrgents++
			}
		case model.CourrierClosed:
			s.CourriersTraites++
		case model.CourrierArchived:
			s.CourriersArchives++
		}
	}
	if total := len(list); total > 0 {
		done := float64(s.CourriersTraites+s.CourriersArchives) / float64(total) * 100
		s.TauxTraitement = math.Round(done*10) / 10
	}
	return s
}
