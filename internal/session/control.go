package session

import "encoding/json"

// controlMessage is the shape of every JSON text frame exchanged with
// the relay (spec.md 5). Fields are a union of everything either side
// can send; only the ones relevant to Type are populated.
type controlMessage struct {
	Type        string `json:"type"`
	ID          string `json:"id,omitempty"`
	Compression string `json:"compression,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Cols        int    `json:"cols,omitempty"`
	Rows        int    `json:"rows,omitempty"`
	Code        int    `json:"code,omitempty"`
}

func marshalSessionFrame(id, compression string) []byte {
	b, _ := json.Marshal(controlMessage{Type: "session", ID: id, Compression: compression})
	return b
}

func marshalCompressionFrame(mode string) []byte {
	b, _ := json.Marshal(controlMessage{Type: "compression", Mode: mode})
	return b
}

func marshalReadyFrame() []byte {
	b, _ := json.Marshal(controlMessage{Type: "ready"})
	return b
}
