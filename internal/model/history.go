package model

import "time"

// HistoryKind tells which part of the graph produced a history entry.
type HistoryKind string

const (
	HistoryArrival HistoryKind = "arrival"
	HistoryAction  HistoryKind = "action"
	HistoryClosure HistoryKind = "closure"
)

// Node status labels shown in the history.
const (
	StatutEnCours = "En cours"
	StatutTermine = "Terminé"
)

// HistoryEntry is one display-ready line of a courrier's audit trail.
type HistoryEntry struct {
	ID          string      `json:"id"`
	Kind        HistoryKind `json:"kind"`
	Action      string      `json:"action"`
	ActionType  ActionType  `json:"actionType,omitempty"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Utilisateur string      `json:"utilisateur"`
	Entite      string      `json:"entite"`
	Statut      string      `json:"statut"`
	NodeID      string      `json:"nodeId"`
}

// Stats summarizes a set of courriers for the dashboard.
type Stats struct {
	CourriersEntrants int     `json:"courriersEntrants"`
	CourriersSortants int     `json:"courriersSortants"`
	CourriersEnCours  int     `json:"courriersEnCours"`
	CourriersTraites  int     `json:"courriersTraites"`
	CourriersArchives int     `json:"courriersArchives"`
	CourriersUrgents  int     `json:"courriersUrgents"`
	TauxTraitement    float64 `json:"tauxTraitement"`
}
