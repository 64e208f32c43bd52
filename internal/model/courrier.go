package model

import (
	"slices"
	"time"
)

// Flow is the direction of a courrier relative to the institution.
type Flow string

const (
	FlowEntrant Flow = "entrant"
	FlowSortant Flow = "sortant"
)

// Valid reports whether f is a known flow.
func (f Flow) Valid() bool {
	return f == FlowEntrant || f == FlowSortant
}

// CourrierStatus is the lifecycle status of a courrier.
type CourrierStatus string

const (
	CourrierInProgress CourrierStatus = "in_progress"
	CourrierClosed     CourrierStatus = "closed"
	CourrierArchived   CourrierStatus = "archived"
)

// Valid reports whether s is a known courrier status.
func (s CourrierStatus) Valid() bool {
	switch s {
	case CourrierInProgress, CourrierClosed, CourrierArchived:
		return true
	}
	return false
}

// NodeStatus is the lifecycle status of a node.
type NodeStatus string

const (
	NodeActive NodeStatus = "active"
	NodeClosed NodeStatus = "closed"
)

// Priority levels accepted in courrier metadata.
const (
	PriorityBasse   = "basse"
	PriorityNormale = "normale"
	PriorityHaute   = "haute"
	PriorityUrgente = "urgente"
)

// Confidentiality levels accepted in courrier metadata.
const (
	ConfidentialitePublique     = "publique"
	ConfidentialiteInterne      = "interne"
	ConfidentialiteConfidentiel = "confidentiel"
	ConfidentialiteSecret       = "secret"
)

// Metadata describes the correspondence itself. JSON keys follow the
// existing store format and must not be renamed.
type Metadata struct {
	Expediteur       string    `json:"expediteur" validate:"required"`
	Objet            string    `json:"objet" validate:"required"`
	Priorite         string    `json:"priorite" validate:"required,oneof=basse normale haute urgente"`
	DateReception    time.Time `json:"dateReception" validate:"required"`
	ReferenceExterne string    `json:"referenceExterne,omitempty"`
	Confidentialite  string    `json:"confidentialite,omitempty" validate:"omitempty,oneof=publique interne confidentiel secret"`
	Tags             []string  `json:"tags,omitempty"`
	CanalReception   string    `json:"canalReception,omitempty"`
}

// Courrier is one tracked piece of correspondence. Nodes are stored as a flat
// arena in creation order; routing links are expressed through PreviousNodeID.
type Courrier struct {
	ID        string         `json:"id"`
	Number    string         `json:"number"`
	Flow      Flow           `json:"flow"`
	Type      string         `json:"type"`
	Status    CourrierStatus `json:"status"`
	Metadata  Metadata       `json:"metadata"`
	Nodes     []Node         `json:"nodes"`
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Node is a sojourn of a courrier inside one entity, held by one user.
// EntityName and UserFullName are display fields filled at the read boundary.
type Node struct {
	ID             string     `json:"id"`
	CourierID      string     `json:"courierId"`
	EntityID       string     `json:"entityId"`
	EntityName     string     `json:"entityName,omitempty"`
	UserID         string     `json:"userId"`
	UserFullName   string     `json:"userFullName,omitempty"`
	ArrivalDate    time.Time  `json:"arrivalDate"`
	CloseDate      *time.Time `json:"closeDate,omitempty"`
	Status         NodeStatus `json:"status"`
	PreviousNodeID string     `json:"previousNodeId,omitempty"`
	Lu             bool       `json:"lu"`
	Actions        []Action   `json:"actions"`
}

// IsRoot reports whether n is the initial node of its courrier.
func (n *Node) IsRoot() bool {
	return n.PreviousNodeID == ""
}

// IsActive reports whether n still holds the courrier.
func (n *Node) IsActive() bool {
	return n.Status == NodeActive
}

// FindNode returns a pointer into c.Nodes for the given id, or nil.
func (c *Courrier) FindNode(id string) *Node {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i]
		}
	}
	return nil
}

// RootNode returns the first node without a predecessor, or nil.
func (c *Courrier) RootNode() *Node {
	for i := range c.Nodes {
		if c.Nodes[i].IsRoot() {
			return &c.Nodes[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate without touching the original graph.
func (c *Courrier) Clone() *Courrier {
	out := *c
	out.Metadata.Tags = slices.Clone(c.Metadata.Tags)
	out.Nodes = make([]Node, len(c.Nodes))
	for i, n := range c.Nodes {
		cp := n
		if n.CloseDate != nil {
			t := *n.CloseDate
			cp.CloseDate = &t
		}
		cp.Actions = slices.Clone(n.Actions)
		out.Nodes[i] = cp
	}
	return &out
}
