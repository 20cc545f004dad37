package client

import (
	"encoding/json"
	"testing"
)

func TestEnvelope_Records(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantNil bool
		wantLen int
		wantErr bool
	}{
		{name: "array", data: `[{"id": 1}, {"id": 2}]`, wantLen: 2},
		{name: "empty array", data: `[]`, wantLen: 0},
		{name: "null", data: `null`, wantNil: true},
		{name: "missing", data: ``, wantNil: true},
		{name: "object", data: `{"id": 1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &Envelope{Data: json.RawMessage(tt.data)}
			records, err := env.Records()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Records() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (records == nil) != tt.wantNil {
				t.Errorf("Records() nil = %v, want %v", records == nil, tt.wantNil)
			}
			if len(records) != tt.wantLen {
				t.Errorf("len(Records()) = %d, want %d", len(records), tt.wantLen)
			}
		})
	}
}

func TestEnvelope_Decode(t *testing.T) {
	env := &Envelope{Data: json.RawMessage(`{"identifier": "h1"}`)}
	var v struct {
		Identifier string `json:"identifier"`
	}
	if err := env.Decode(&v); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if v.Identifier != "h1" {
		t.Errorf("Identifier = %q, want h1", v.Identifier)
	}

	if err := (&Envelope{}).Decode(&v); err == nil {
		t.Error("Decode() on empty envelope should fail")
	}
}
