package light

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestID_Equality(t *testing.T) {
	cfg := uuid.MustParse("8f1b2a40-7c2e-4b5e-9b8f-1f2d3c4b5a69")

	if ScreenID(4, 1) != ScreenID(4, 1) {
		t.Error("identical screen ids should be equal")
	}
	if ScreenID(4, 1) == ScreenID(4, 2) {
		t.Error("different screen indices should not be equal")
	}
	if HueID(cfg, 3) != HueID(cfg, 3) {
		t.Error("identical hue ids should be equal")
	}
	if HueID(cfg, 3) == HueID(uuid.New(), 3) {
		t.Error("hue ids with different configurations should not be equal")
	}
	if ScreenID(0, 0) == HueID(uuid.Nil, 0) {
		t.Error("variants should never compare equal")
	}

	m := map[ID]int{ScreenID(2, 0): 1, HueID(cfg, 0): 2}
	if m[ScreenID(2, 0)] != 1 || m[HueID(cfg, 0)] != 2 {
		t.Error("ids should work as map keys")
	}
}

func TestID_StringRoundTrip(t *testing.T) {
	cfg := uuid.MustParse("8f1b2a40-7c2e-4b5e-9b8f-1f2d3c4b5a69")
	tests := []struct {
		id   ID
		want string
	}{
		{ScreenID(4, 1), "screen:4:1"},
		{HueID(cfg, 3), "hue:8f1b2a40-7c2e-4b5e-9b8f-1f2d3c4b5a69:3"},
	}

	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		parsed, err := ParseID(tt.want)
		if err != nil {
			t.Fatalf("ParseID(%q): %v", tt.want, err)
		}
		if parsed != tt.id {
			t.Errorf("ParseID(%q) = %v, want %v", tt.want, parsed, tt.id)
		}
	}
}

func TestParseID_Invalid(t *testing.T) {
	for _, s := range []string{"", "screen", "screen:a:1", "screen:1:300", "hue:nope:1", "lifx:1:2"} {
		if _, err := ParseID(s); err == nil {
			t.Errorf("ParseID(%q) should fail", s)
		}
	}
}

func TestID_JSON(t *testing.T) {
	cfg := uuid.MustParse("8f1b2a40-7c2e-4b5e-9b8f-1f2d3c4b5a69")
	for _, id := range []ID{ScreenID(6, 5), HueID(cfg, 12)} {
		data, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", id, err)
		}
		var got ID
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got != id {
			t.Errorf("JSON round trip = %v, want %v", got, id)
		}
	}

	if _, err := json.Marshal(ID{}); err == nil {
		t.Error("marshalling a zero id should fail")
	}
}

func TestID_MapKeyJSON(t *testing.T) {
	in := map[ID]float64{ScreenID(2, 0): 0.5, ScreenID(2, 1): 1}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[ID]float64
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out) != 2 || out[ScreenID(2, 1)] != 1 {
		t.Errorf("map round trip = %v", out)
	}
}
