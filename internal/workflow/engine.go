package workflow

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gecapi/internal/model"
)

// Engine is the routing engine: the only component allowed to grow a courrier
// graph. It performs no I/O; callers load and persist the aggregate.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// NewEngine builds an engine using UTC wall time and random UUIDs unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Destination is an entity/user pair a courrier is sent to.
type Destination struct {
	EntityID string `json:"entity" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
}

// CreateCourrierInput carries everything needed to register a courrier.
// Number is allocated by the caller from the system of record.
type CreateCourrierInput struct {
	ID              string               `json:"id,omitempty"`
	Number          string               `json:"number" validate:"required"`
	Flow            model.Flow           `json:"flow" validate:"required,oneof=entrant sortant"`
	Type            string               `json:"type" validate:"required"`
	Metadata        model.Metadata       `json:"metadata"`
	NoteInitiale    string               `json:"noteInitiale,omitempty"`
	InitialEntityID string               `json:"initialEntity" validate:"required"`
	InitialUserID   string               `json:"initialUserId" validate:"required"`
	Destinations    []Destination        `json:"destinations" validate:"dive"`
	Documents       []model.DataDocument `json:"documents,omitempty" validate:"dive"`
}

// UnmarshalJSON also accepts the initial note nested as metadata.noteInitiale,
// the shape registry clients send. A top-level noteInitiale wins. The note is
// never kept in the stored metadata.
func (in *CreateCourrierInput) UnmarshalJSON(b []byte) error {
	type plain CreateCourrierInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.NoteInitiale == "" {
		var nested struct {
			Metadata struct {
				NoteInitiale string `json:"noteInitiale"`
			} `json:"metadata"`
		}
		if err := json.Unmarshal(b, &nested); err != nil {
			return err
		}
		p.NoteInitiale = nested.Metadata.NoteInitiale
	}
	*in = CreateCourrierInput(p)
	return nil
}

// CreateCourrier builds a new courrier with its root node and, when
// destinations are given, one transmettre action fanning out to one node per
// destination.
func (e *Engine) CreateCourrier(in CreateCourrierInput) (*model.Courrier, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	now := e.now()
	id := in.ID
	if id == "" {
		id = e.newID()
	}

	root := model.Node{
		ID:          e.newID(),
		CourierID:   id,
		EntityID:    in.InitialEntityID,
		UserID:      in.InitialUserID,
		ArrivalDate: now,
		Status:      model.NodeActive,
		Lu:          true,
		Actions:     []model.Action{},
	}

	if len(in.Documents) > 0 {
		root.Actions = append(root.Actions, e.newAction(&root, in.InitialUserID, now,
			model.AttachDocumentsData{Documents: append([]model.DataDocument(nil), in.Documents...)}))
	}
	if in.NoteInitiale != "" {
		root.Actions = append(root.Actions, e.newAction(&root, in.InitialUserID, now,
			model.AnnotateData{Note: in.NoteInitiale}))
	}

	nodes := []model.Node{root}
	if len(in.Destinations) > 0 {
		targets := make([]model.Target, 0, len(in.Destinations))
		for _, d := range in.Destinations {
			targets = append(targets, model.Target{Entity: d.EntityID, User: d.UserID})
			nodes = append(nodes, e.newNode(id, root.ID, d, now))
		}
		nodes[0].Actions = append(nodes[0].Actions, e.newAction(&root, in.InitialUserID, now,
			model.TransmitData{Targets: targets, Message: in.Metadata.Objet}))
	}

	c := &model.Courrier{
		ID:        id,
		Number:    in.Number,
		Flow:      in.Flow,
		Type:      in.Type,
		Status:    model.CourrierInProgress,
		Metadata:  in.Metadata,
		Nodes:     nodes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ValidateCourrier(c); err != nil {
		return nil, err
	}
	return c, nil
}

// TransmitInput describes a forward of a courrier from one of its nodes.
type TransmitInput struct {
	SourceNodeID        string               `json:"-"`
	AuthorID            string               `json:"authorId,omitempty"`
	Recipients          []Destination        `json:"recipients" validate:"required,min=1,dive"`
	Message             string               `json:"message,omitempty"`
	Priority            string               `json:"priority,omitempty" validate:"omitempty,oneof=basse normale haute urgente"`
	Confidentialite     string               `json:"confidentialite,omitempty" validate:"omitempty,oneof=publique interne confidentiel secret"`
	AdditionalDocuments []model.DataDocument `json:"additionalDocuments,omitempty" validate:"dive"`
}

// TransmitResult is the graph fragment appended by Transmit.
type TransmitResult struct {
	Action          model.Action  `json:"action"`
	DocumentsAction *model.Action `json:"documentsAction,omitempty"`
	NewNodes        []model.Node  `json:"newNodes"`
}

// Transmit appends a transmettre action to the source node and one new active,
// unread node per recipient. Nothing is appended when an error is returned.
func (e *Engine) Transmit(c *model.Courrier, in TransmitInput) (*TransmitResult, error) {
	src := c.FindNode(in.SourceNodeID)
	if src == nil {
		return nil, nodeNotFound(c.ID, in.SourceNodeID)
	}
	if !src.IsActive() {
		return nil, inactiveNode(src.ID)
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	author := in.AuthorID
	if author == "" {
		author = src.UserID
	}
	at := e.stamp(src)

	res := &TransmitResult{NewNodes: make([]model.Node, 0, len(in.Recipients))}
	if len(in.AdditionalDocuments) > 0 {
		docs := e.newAction(src, author, at,
			model.AttachDocumentsData{Documents: append([]model.DataDocument(nil), in.AdditionalDocuments...)})
		res.DocumentsAction = &docs
	}

	targets := make([]model.Target, 0, len(in.Recipients))
	for _, r := range in.Recipients {
		targets = append(targets, model.Target{Entity: r.EntityID, User: r.UserID})
		res.NewNodes = append(res.NewNodes, e.newNode(c.ID, src.ID, r, at))
	}
	res.Action = e.newAction(src, author, at, model.TransmitData{Targets: targets, Message: in.Message})

	if res.DocumentsAction != nil {
		src.Actions = append(src.Actions, *res.DocumentsAction)
	}
	src.Actions = append(src.Actions, res.Action)
	c.Nodes = append(c.Nodes, res.NewNodes...)
	if in.Priority != "" {
		c.Metadata.Priorite = in.Priority
	}
	if in.Confidentialite != "" {
		c.Metadata.Confidentialite = in.Confidentialite
	}
	c.UpdatedAt = at
	return res, nil
}

// ApplyActionInput is a generic action request with a raw JSON payload.
type ApplyActionInput struct {
	NodeID   string           `json:"-"`
	Type     model.ActionType `json:"type"`
	AuthorID string           `json:"authorId"`
	Payload  json.RawMessage  `json:"data"`
}

// ApplyAction decodes the payload against the declared type and appends the action.
func (e *Engine) ApplyAction(c *model.Courrier, in ApplyActionInput) (*model.Action, error) {
	if c.FindNode(in.NodeID) == nil {
		return nil, nodeNotFound(c.ID, in.NodeID)
	}
	data, err := DecodePayload(in.Type, in.Payload)
	if err != nil {
		return nil, err
	}
	return e.AppendAction(c, in.NodeID, in.AuthorID, data)
}

// AppendAction appends an already-typed payload to a node and applies its
// structural effect: cloturer closes the node (and the courrier once no node
// is left active), archiver archives a closed courrier.
func (e *Engine) AppendAction(c *model.Courrier, nodeID, authorID string, data model.ActionData) (*model.Action, error) {
	node := c.FindNode(nodeID)
	if node == nil {
		return nil, nodeNotFound(c.ID, nodeID)
	}
	if data == nil {
		return nil, &SchemaMismatchError{Err: errNoPayload}
	}
	t := data.ActionType()
	if err := CheckPayload(t, data); err != nil {
		return nil, err
	}
	if t == model.ActionTransmettre {
		return nil, &SchemaMismatchError{Type: t, Err: errUseTransmit}
	}
	if authorID == "" {
		return nil, invalidf("author id is required")
	}
	if c.Status == model.CourrierArchived {
		return nil, invalidf("courrier %s is archived", c.ID)
	}

	switch t {
	case model.ActionArchiver:
		if c.Status != model.CourrierClosed {
			return nil, invalidf("courrier %s must be closed before it is archived", c.ID)
		}
	default:
		if !node.IsActive() {
			return nil, inactiveNode(node.ID)
		}
	}

	at := e.stamp(node)
	a := e.newAction(node, authorID, at, data)
	node.Actions = append(node.Actions, a)

	switch t {
	case model.ActionCloturer:
		closed := at
		node.Status = model.NodeClosed
		node.CloseDate = &closed
		if len(ActiveNodes(c)) == 0 {
			c.Status = model.CourrierClosed
		}
	case model.ActionArchiver:
		c.Status = model.CourrierArchived
	}
	c.UpdatedAt = at
	return &a, nil
}

// MarkRead flags a node as acknowledged by its user. It is idempotent.
func (e *Engine) MarkRead(c *model.Courrier, nodeID string) error {
	node := c.FindNode(nodeID)
	if node == nil {
		return nodeNotFound(c.ID, nodeID)
	}
	node.Lu = true
	return nil
}

func (e *Engine) newNode(courierID, previousID string, d Destination, at time.Time) model.Node {
	return model.Node{
		ID:             e.newID(),
		CourierID:      courierID,
		EntityID:       d.EntityID,
		UserID:         d.UserID,
		ArrivalDate:    at,
		Status:         model.NodeActive,
		PreviousNodeID: previousID,
		Lu:             false,
		Actions:        []model.Action{},
	}
}

func (e *Engine) newAction(node *model.Node, authorID string, at time.Time, data model.ActionData) model.Action {
	return model.Action{
		ID:       e.newID(),
		NodeID:   node.ID,
		Type:     data.ActionType(),
		Date:     at,
		AuthorID: authorID,
		Data:     data,
	}
}

// stamp returns the current time, never earlier than the node's arrival nor
// its last action.
func (e *Engine) stamp(node *model.Node) time.Time {
	at := e.now()
	if at.Before(node.ArrivalDate) {
		at = node.ArrivalDate
	}
	if n := len(node.Actions); n > 0 && at.Before(node.Actions[n-1].Date) {
		at = node.Actions[n-1].Date
	}
	return at
}
