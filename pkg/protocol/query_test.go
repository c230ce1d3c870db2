package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestRequestEncode(t *testing.T) {
	req := NewRequest(3, "create", 300, 150)
	framed, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	body := framed[4:]
	declared := uint32(framed[0])<<24 | uint32(framed[1])<<16 | uint32(framed[2])<<8 | uint32(framed[3])
	if int(declared) != len(body) {
		t.Errorf("length prefix = %d, want %d", declared, len(body))
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if got["id"] != float64(3) {
		t.Errorf("id = %v, want 3", got["id"])
	}
	if got["action"] != "create" {
		t.Errorf("action = %v, want create", got["action"])
	}
	args, ok := got["args"].([]any)
	if !ok || len(args) != 2 || args[0] != float64(300) || args[1] != float64(150) {
		t.Errorf("args = %v, want [300 150]", got["args"])
	}
}

func TestGlobalRequestNullID(t *testing.T) {
	framed, err := NewGlobalRequest("sleep", 250.0).Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(framed[4:], &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	v, present := got["id"]
	if !present {
		t.Error("id key missing; global requests carry an explicit null")
	}
	if v != nil {
		t.Errorf("id = %v, want null", v)
	}
}

func TestDecodeRequestRoundTrip(t *testing.T) {
	want := NewRequest(7, "create", 20, 10)
	framed, err := want.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeRequest(framed)
	if err != nil {
		t.Fatalf("DecodeRequest error: %v", err)
	}
	if got.ID == nil || *got.ID != 7 {
		t.Errorf("ID = %v, want 7", got.ID)
	}
	if got.Action != "create" {
		t.Errorf("Action = %q, want create", got.Action)
	}
	if len(got.Args) != 2 {
		t.Errorf("Args = %v, want two entries", got.Args)
	}
}

func TestReadResponse(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want any
	}{
		{"true", true, true},
		{"null", nil, nil},
		{"number", 42.0, 42.0},
		{"object", map[string]any{"ok": true}, map[string]any{"ok": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			framed, err := EncodeResponse(tt.v)
			if err != nil {
				t.Fatalf("EncodeResponse error: %v", err)
			}
			got, err := ReadResponse(bytes.NewReader(framed))
			if err != nil {
				t.Fatalf("ReadResponse error: %v", err)
			}
			switch want := tt.want.(type) {
			case map[string]any:
				m, ok := got.(map[string]any)
				if !ok || m["ok"] != want["ok"] {
					t.Errorf("ReadResponse = %v, want %v", got, want)
				}
			default:
				if got != tt.want {
					t.Errorf("ReadResponse = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestReadResponseZeroLength(t *testing.T) {
	got, err := ReadResponse(bytes.NewReader([]byte{0, 0, 0, 0}))
	if err != nil || got != nil {
		t.Errorf("ReadResponse = %v, %v, want nil, nil", got, err)
	}
}

func TestReadResponseTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short prefix", []byte{0, 0}},
		{"short body", []byte{0, 0, 0, 10, '{', '}'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadResponse(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrTruncatedMessage) {
				t.Errorf("error = %v, want ErrTruncatedMessage", err)
			}
		})
	}
}

func TestReadResponseTooLarge(t *testing.T) {
	_, err := ReadResponse(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF}))
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("error = %v, want ErrFrameTooLarge", err)
	}
}
