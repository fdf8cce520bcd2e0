package api

import (
	"encoding/json"
	"fmt"
)

// Action codes of server-client packets handled by the alert processor.
const (
	ActionUserAlert       = "ua"   // live notification record
	ActionNodesAdded      = "t"    // new nodes
	ActionNodeDeleted     = "d"    // node removed
	ActionNodeUpdated     = "u"    // node attributes/version changed
	ActionShare           = "s2"   // folder shared with us
	ActionContactChange   = "c"    // contact relationship changed
	ActionIncomingRequest = "ipc"  // incoming pending contact request
	ActionIncomingUpdated = "upci" // incoming request updated
	ActionOutgoingUpdated = "upco" // outgoing request updated
	ActionPayment         = "psts" // payment status
	ActionPaymentReminder = "pses" // plan expiry reminder
	ActionTakedown        = "ph"   // public link takedown
	ActionAcknowledged    = "la"   // alerts acknowledged on another client
	ActionBatchEnd        = "sn"   // end of the current packet batch
)

// ActionPacket is one server-client packet.
type ActionPacket struct {
	Fields Fields
	Action string
}

// UnmarshalJSON splits the "a" member from the remaining fields.
func (p *ActionPacket) UnmarshalJSON(data []byte) error {
	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode action packet: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("action packet is not an object")
	}

	p.Action = fields.String("a", "")
	delete(fields, "a")
	p.Fields = fields
	return nil
}

// NodeRecord describes a node carried by a "t" packet.
type NodeRecord struct {
	Handle string `json:"h"`
	Parent string `json:"p"`
	Name   string `json:"name"`
	Kind   int    `json:"t"`
}

// NodeTree is the payload of a "t" packet.
type NodeTree struct {
	Nodes []NodeRecord `json:"f"`
}

// ContactRecord is one element of a "c" packet.
type ContactRecord struct {
	Handle string `json:"u"`
	Email  string `json:"m"`
	Action int    `json:"c"`
}
