package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"gecapi/internal/model"
)

var (
	validate = newValidator()

	numberPattern = regexp.MustCompile(`^GEC-\d{4}-\d{4,}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names the way clients send them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FormatNumber renders a courrier number for the given year and sequence.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("GEC-%d-%04d", year, seq)
}

// IsTerminalAction reports whether t ends the life of what it acts on:
// cloturer closes its node, archiver archives its courrier.
func IsTerminalAction(t model.ActionType) bool {
	return t == model.ActionCloturer || t == model.ActionArchiver
}

// DecodePayload decodes a client payload for the given action type and
// validates it. Any mismatch is reported as *SchemaMismatchError.
func DecodePayload(t model.ActionType, raw json.RawMessage) (model.ActionData, error) {
	if !t.Known() {
		return nil, &SchemaMismatchError{Type: t, Err: errors.New("unknown action type")}
	}
	data, err := model.DecodeActionData(t, raw, true)
	if err != nil {
		return nil, &SchemaMismatchError{Type: t, Err: err}
	}
	if err := CheckPayload(t, data); err != nil {
		return nil, err
	}
	return data, nil
}

// CheckPayload verifies that data is the payload shape declared by t and that
// its required fields are present.
func CheckPayload(t model.ActionType, data model.ActionData) error {
	if data == nil {
		return &SchemaMismatchError{Type: t, Err: errNoPayload}
	}
	if _, unknown := data.(model.UnknownData); unknown || !t.Known() {
		return &SchemaMismatchError{Type: t, Err: errors.New("unknown action type")}
	}
	if data.ActionType() != t {
		return &SchemaMismatchError{Type: t, Err: fmt.Errorf("payload is for %q", data.ActionType())}
	}
	if err := validate.Struct(data); err != nil {
		return &SchemaMismatchError{Type: t, Err: err}
	}
	return nil
}

func checkStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return invalidf("invalid fields: %s", strings.Join(fields, ", "))
		}
		return invalidf("%v", err)
	}
	return nil
}

// ValidateCourrier checks the structural invariants of a courrier graph.
func ValidateCourrier(c *model.Courrier) error {
	if c == nil {
		return invalidf("courrier is nil")
	}
	if c.ID == "" {
		return invalidf("courrier id is required")
	}
	if !numberPattern.MatchString(c.Number) {
		return invalidf("courrier number %q does not match GEC-<year>-<sequence>", c.Number)
	}
	if !c.Flow.Valid() {
		return invalidf("unknown flow %q", c.Flow)
	}
	if !c.Status.Valid() {
		return invalidf("unknown status %q", c.Status)
	}
	if len(c.Nodes) == 0 {
		return invalidf("courrier %s has no node", c.ID)
	}

	ids := make(map[string]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.ID == "" {
			return invalidf("node without id")
		}
		if _, dup := ids[n.ID]; dup {
			return invalidf("duplicate node id %s", n.ID)
		}
		ids[n.ID] = struct{}{}
	}

	roots, active := 0, 0
	for _, n := range c.Nodes {
		if n.CourierID != c.ID {
			return invalidf("node %s belongs to courrier %s", n.ID, n.CourierID)
		}
		if n.IsRoot() {
			roots++
		} else {
			if _, ok := ids[n.PreviousNodeID]; !ok {
				return invalidf("node %s references unknown previous node %s", n.ID, n.PreviousNodeID)
			}
			if n.PreviousNodeID == n.ID {
				return invalidf("node %s references itself", n.ID)
			}
		}
		switch n.Status {
		case model.NodeActive:
			active++
			if n.CloseDate != nil {
				return invalidf("active node %s has a close date", n.ID)
			}
		case model.NodeClosed:
			if n.CloseDate == nil {
				return invalidf("closed node %s has no close date", n.ID)
			}
		default:
			return invalidf("node %s has unknown status %q", n.ID, n.Status)
		}
		for _, a := range n.Actions {
			if a.NodeID != n.ID {
				return invalidf("action %s is attached to node %s but references %s", a.ID, n.ID, a.NodeID)
			}
			if a.Date.Before(n.ArrivalDate) {
				return invalidf("action %s predates arrival in node %s", a.ID, n.ID)
			}
		}
	}
	if roots != 1 {
		return invalidf("courrier %s must have exactly one root node, found %d", c.ID, roots)
	}
	if cycle := findCycle(c); cycle != "" {
		return invalidf("routing cycle through node %s", cycle)
	}

	switch c.Status {
	case model.CourrierInProgress:
		if active == 0 {
			return invalidf("courrier %s is in progress without an active node", c.ID)
		}
	case model.CourrierClosed, model.CourrierArchived:
		if active > 0 {
			return invalidf("courrier %s is %s but has %d active node(s)", c.ID, c.Status, active)
		}
	}
	return nil
}

// findCycle returns a node id on a previousNodeId cycle, or "".
func findCycle(c *model.Courrier) string {
	parent := make(map[string]string, len(c.Nodes))
	for _, n := range c.Nodes {
		parent[n.ID] = n.PreviousNodeID
	}
	for _, n := range c.Nodes {
		seen := map[string]struct{}{}
		for id := n.ID; id != ""; id = parent[id] {
			if _, ok := seen[id]; ok {
				return id
			}
			seen[id] = struct{}{}
		}
	}
	return ""
}
