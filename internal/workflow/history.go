package workflow

import (
	"fmt"
	"slices"
	"strings"

	"gecapi/internal/model"
)

// UnknownEntity labels an entity whose name cannot be resolved.
const UnknownEntity = "Entité inconnue"

// UserPlaceholder labels a user whose name cannot be resolved.
func UserPlaceholder(id string) string {
	return "Utilisateur " + id
}

// NameResolver resolves display names for entity and user ids.
// Implementations report ok=false when a name is unknown.
type NameResolver interface {
	EntityName(entityID string) (string, bool)
	UserName(userID string) (string, bool)
}

type names struct {
	r NameResolver
}

func (n names) entity(id, stored string) string {
	if stored != "" {
		return stored
	}
	if n.r != nil && id != "" {
		if name, ok := n.r.EntityName(id); ok && name != "" {
			return name
		}
	}
	return UnknownEntity
}

func (n names) user(id, stored string) string {
	if stored != "" {
		return stored
	}
	if n.r != nil && id != "" {
		if name, ok := n.r.UserName(id); ok && name != "" {
			return name
		}
	}
	return UserPlaceholder(id)
}

// target renders a transmission target, keeping the raw id when unresolved.
func (n names) target(id string) string {
	if n.r != nil {
		if name, ok := n.r.EntityName(id); ok && name != "" {
			return name
		}
	}
	return id
}

// ProjectHistory flattens a courrier into its audit trail, most recent first.
// It never fails: unknown action types and unresolved names degrade to
// generic labels. Entries with equal timestamps keep their graph order.
func ProjectHistory(c *model.Courrier, resolver NameResolver) []model.HistoryEntry {
	if c == nil {
		return []model.HistoryEntry{}
	}
	nm := names{r: resolver}

	entries := make([]model.HistoryEntry, 0, len(c.Nodes)*2)
	for _, node := range c.Nodes {
		entity := nm.entity(node.EntityID, node.EntityName)
		user := nm.user(node.UserID, node.UserFullName)
		statut := model.StatutTermine
		if node.IsActive() {
			statut = model.StatutEnCours
		}

		arrival := model.HistoryEntry{
			ID:          "node-" + node.ID + "-arrival",
			Kind:        model.HistoryArrival,
			Date:        node.ArrivalDate,
			Utilisateur: user,
			Entite:      entity,
			Statut:      statut,
			NodeID:      node.ID,
		}
		if node.IsRoot() {
			arrival.Action = "Création"
			arrival.Description = "Courrier créé et enregistré"
		} else {
			arrival.Action = "Réception"
			arrival.Description = "Reçu par l'entité " + entity
		}
		entries = append(entries, arrival)

		for _, a := range node.Actions {
			label, desc := describeAction(a, nm)
			entries = append(entries, model.HistoryEntry{
				ID:          "action-" + a.ID,
				Kind:        model.HistoryAction,
				Action:      label,
				ActionType:  a.Type,
				Description: desc,
				Date:        a.Date,
				Utilisateur: nm.user(a.AuthorID, ""),
				Entite:      entity,
				Statut:      statut,
				NodeID:      node.ID,
			})
		}

		if node.Status == model.NodeClosed && node.CloseDate != nil {
			entries = append(entries, model.HistoryEntry{
				ID:          "node-" + node.ID + "-close",
				Kind:        model.HistoryClosure,
				Action:      "Clôture",
				Description: "Node clôturé dans l'entité " + entity,
				Date:        *node.CloseDate,
				Utilisateur: user,
				Entite:      entity,
				Statut:      model.StatutTermine,
				NodeID:      node.ID,
			})
		}
	}

	slices.SortStableFunc(entries, func(a, b model.HistoryEntry) int {
		return b.Date.Compare(a.Date)
	})
	return entries
}

func describeAction(a model.Action, nm names) (label, desc string) {
	switch a.Type {
	case model.ActionAnnoter:
		d, _ := a.Data.(model.AnnotateData)
		return "Annotation", orDefault(d.Note, "Note ajoutée")
	case model.ActionTransmettre:
		d, _ := a.Data.(model.TransmitData)
		targets := make([]string, 0, len(d.Targets))
		for _, t := range d.Targets {
			targets = append(targets, nm.target(t.Entity))
		}
		desc = "Transmis à " + strings.Join(targets, ", ")
		if d.Message != "" {
			desc += " - " + d.Message
		}
		return "Transmission", desc
	case model.ActionValider:
		d, _ := a.Data.(model.ValidateData)
		return "Validation", orDefault(d.Comment, "Courrier validé")
	case model.ActionJoindreDocument:
		d, _ := a.Data.(model.AttachDocumentsData)
		return "Document", fmt.Sprintf("%d document(s) joint(s)", len(d.Documents))
	case model.ActionRejeter:
		d, _ := a.Data.(model.RejectData)
		return "Rejet", orDefault(d.Reason, "Courrier rejeté")
	case model.ActionRepondre:
		d, _ := a.Data.(model.RespondData)
		return "Réponse", orDefault(d.Content, "Réponse envoyée")
	case model.ActionCloturer:
		d, _ := a.Data.(model.CloseData)
		return "Clôture", orDefault(d.Comment, "Courrier clôturé")
	case model.ActionArchiver:
		d, _ := a.Data.(model.ArchiveData)
		return "Archivage", orDefault(d.Comment, "Courrier archivé")
	}
	return "Action", fmt.Sprintf("Action %s effectuée", a.Type)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// AggregateDocuments lists every document attached through joindre_document
// actions, in node order then action order.
func AggregateDocuments(c *model.Courrier) []model.DataDocument {
	docs := []model.DataDocument{}
	if c == nil {
		return docs
	}
	for _, node := range c.Nodes {
		for _, a := range node.Actions {
			if a.Type != model.ActionJoindreDocument {
				continue
			}
			if d, ok := a.Data.(model.AttachDocumentsData); ok {
				docs = append(docs, d.Documents...)
			}
		}
	}
	return docs
}
