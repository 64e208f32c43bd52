package workflow

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gecapi/internal/model"
)

type mapResolver struct {
	entities map[string]string
	users    map[string]string
}

func (r mapResolver) EntityName(id string) (string, bool) {
	name, ok := r.entities[id]
	return name, ok
}

func (r mapResolver) UserName(id string) (string, bool) {
	name, ok := r.users[id]
	return name, ok
}

var testResolver = mapResolver{
	entities: map[string]string{"secretariat": "Secrétariat Général", "daf": "Direction Administrative et Financière"},
	users:    map[string]string{"u1": "Awa Diallo", "u3": "Moussa Traoré"},
}

func closedRootWithHandoff() *model.Courrier {
	ten := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	halfPast := ten.Add(30 * time.Minute)
	return &model.Courrier{
		ID: "c1", Number: "GEC-2025-0001", Flow: model.FlowEntrant, Status: model.CourrierInProgress,
		Nodes: []model.Node{
			{
				ID: "n1", CourierID: "c1", EntityID: "secretariat", UserID: "u1",
				ArrivalDate: ten, CloseDate: &halfPast, Status: model.NodeClosed, Lu: true,
				Actions: []model.Action{{
					ID: "a1", NodeID: "n1", Type: model.ActionCloturer, Date: halfPast, AuthorID: "u1", Data: model.CloseData{},
				}},
			},
			{
				ID: "n2", CourierID: "c1", EntityID: "daf", UserID: "u3",
				ArrivalDate: halfPast, Status: model.NodeActive, PreviousNodeID: "n1",
			},
		},
	}
}

func TestProjectHistory_ClosedRootAndHandoff(t *testing.T) {
	c := closedRootWithHandoff()

	entries := ProjectHistory(c, testResolver)

	require.Len(t, entries, 4)
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"action-a1", "node-n1-close", "node-n2-arrival", "node-n1-arrival"}, ids)

	assert.Equal(t, "Clôture", entries[1].Action)
	assert.Equal(t, model.HistoryClosure, entries[1].Kind)
	assert.Equal(t, "Node clôturé dans l'entité Secrétariat Général", entries[1].Description)

	assert.Equal(t, "Réception", entries[2].Action)
	assert.Equal(t, "Reçu par l'entité Direction Administrative et Financière", entries[2].Description)
	assert.Equal(t, "Moussa Traoré", entries[2].Utilisateur)
	assert.Equal(t, model.StatutEnCours, entries[2].Statut)

	assert.Equal(t, "Création", entries[3].Action)
	assert.Equal(t, "Courrier créé et enregistré", entries[3].Description)
	assert.Equal(t, model.StatutTermine, entries[3].Statut)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.After(entries[i-1].Date), "entries must be most recent first")
	}
}

func TestProjectHistory_CountsEveryEvent(t *testing.T) {
	e, clock := newTestEngine()
	c := mustCreate(t, e, baseInput(Destination{EntityID: "daf", UserID: "u3"}, Destination{EntityID: "drh", UserID: "u2"}))
	clock.Advance(time.Minute)
	_, err := e.AppendAction(c, c.Nodes[1].ID, "u3", model.CloseData{})
	require.NoError(t, err)

	entries := ProjectHistory(c, nil)

	want := 0
	for _, n := range c.Nodes {
		want += 1 + len(n.Actions)
		if n.Status == model.NodeClosed {
			want++
		}
	}
	assert.Len(t, entries, want)
}

func TestProjectHistory_UnknownTypesAndNames(t *testing.T) {
	var c model.Courrier
	raw := `{
		"id": "c9", "number": "GEC-2024-0100", "flow": "sortant", "type": "Note", "status": "in_progress",
		"metadata": {"expediteur": "DG", "objet": "Note", "priorite": "basse", "dateReception": "2024-06-01T08:00:00Z"},
		"nodes": [{
			"id": "n1", "courierId": "c9", "entityId": "ghost-entity", "userId": "ghost-user",
			"arrivalDate": "2024-06-01T08:00:00Z", "status": "active", "lu": true,
			"actions": [
				{"id": "a1", "nodeId": "n1", "type": "tamponner", "date": "2024-06-01T09:00:00Z", "authorId": "ghost-user", "data": {"cachet": "rouge"}},
				{"id": "a2", "nodeId": "n1", "type": "transmettre", "date": "2024-06-01T09:00:00Z", "authorId": "ghost-user",
				 "data": {"targets": [{"entity": "daf", "user": "u3"}, {"entity": "ailleurs", "user": "u8"}], "message": "Pour suite"}}
			]
		}]
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	entries := ProjectHistory(&c, testResolver)

	require.Len(t, entries, 3)
	unknown, transmit := entries[0], entries[1]
	assert.Equal(t, "action-a1", unknown.ID, "stable order for equal timestamps")
	assert.Equal(t, "Action", unknown.Action)
	assert.Equal(t, "Action tamponner effectuée", unknown.Description)
	assert.Equal(t, UnknownEntity, unknown.Entite)
	assert.Equal(t, "Utilisateur ghost-user", unknown.Utilisateur)

	assert.Equal(t, "Transmission", transmit.Action)
	assert.Equal(t, "Transmis à Direction Administrative et Financière, ailleurs - Pour suite", transmit.Description)
}

func TestProjectHistory_StoredNamesWin(t *testing.T) {
	c := closedRootWithHandoff()
	c.Nodes[1].EntityName = "DAF"
	c.Nodes[1].UserFullName = "M. Traoré"

	entries := ProjectHistory(c, testResolver)

	for _, e := range entries {
		if e.ID == "node-n2-arrival" {
			assert.Equal(t, "DAF", e.Entite)
			assert.Equal(t, "M. Traoré", e.Utilisateur)
		}
	}
}

func TestProjectHistory_DescribeActions(t *testing.T) {
	tests := []struct {
		data      model.ActionData
		wantLabel string
		wantDesc  string
	}{
		{model.AnnotateData{Note: "Urgent"}, "Annotation", "Urgent"},
		{model.ValidateData{}, "Validation", "Courrier validé"},
		{model.AttachDocumentsData{Documents: make([]model.DataDocument, 2)}, "Document", "2 document(s) joint(s)"},
		{model.RejectData{Reason: "Incomplet"}, "Rejet", "Incomplet"},
		{model.RespondData{Content: "Réponse favorable"}, "Réponse", "Réponse favorable"},
		{model.CloseData{}, "Clôture", "Courrier clôturé"},
		{model.ArchiveData{Comment: "Classé"}, "Archivage", "Classé"},
	}

	for _, tt := range tests {
		t.Run(string(tt.data.ActionType()), func(t *testing.T) {
			label, desc := describeAction(model.Action{Type: tt.data.ActionType(), Data: tt.data}, names{})
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestProjectHistory_Nil(t *testing.T) {
	entries := ProjectHistory(nil, nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAggregateDocuments_AcrossNodesInGraphOrder(t *testing.T) {
	d := func(id string) model.DataDocument {
		return model.DataDocument{ID: id, Filename: id + ".pdf", URL: "courriers/" + id + ".pdf"}
	}
	c := &model.Courrier{
		Nodes: []model.Node{
			{ID: "n1", Actions: []model.Action{
				{ID: "a1", Type: model.ActionAnnoter, Data: model.AnnotateData{Note: "x"}},
				{ID: "a2", Type: model.ActionJoindreDocument, Data: model.AttachDocumentsData{Documents: []model.DataDocument{d("doc1"), d("doc2")}}},
			}},
			{ID: "n2", Actions: []model.Action{
				{ID: "a3", Type: model.ActionRepondre, Data: model.RespondData{Content: "ok", Documents: []model.DataDocument{d("reply")}}},
				{ID: "a4", Type: model.ActionJoindreDocument, Data: model.AttachDocumentsData{Documents: []model.DataDocument{d("doc3")}}},
			}},
		},
	}

	docs := AggregateDocuments(c)

	require.Len(t, docs, 3)
	assert.Equal(t, "doc1", docs[0].ID)
	assert.Equal(t, "doc2", docs[1].ID)
	assert.Equal(t, "doc3", docs[2].ID)
}

func TestAggregateDocuments_Empty(t *testing.T) {
	assert.Empty(t, AggregateDocuments(nil))
	assert.NotNil(t, AggregateDocuments(&model.Courrier{}))
}
