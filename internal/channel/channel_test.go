package channel

import "testing"

func TestMayClear(t *testing.T) {
	tests := []struct {
		name   string
		owner  Channel
		target Channel
		want   bool
	}{
		{"flash_clears_default", Flash, Default, true},
		{"flash_clears_itself", Flash, Flash, true},
		{"flash_cannot_clear_strobe", Flash, Strobe, false},
		{"strobe_clears_background", Strobe, Background, true},
		{"default_cannot_clear_flash", Default, Flash, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.owner.MayClear(tt.target); got != tt.want {
				t.Errorf("%v.MayClear(%v) = %v, want %v", tt.owner, tt.target, got, tt.want)
			}
		})
	}
}

func TestGoverns(t *testing.T) {
	for _, k := range Ordered {
		if !All.Governs(k) {
			t.Errorf("All should govern %v", k)
		}
	}
	if !Flash.Governs(Flash) {
		t.Error("Flash should govern itself")
	}
	if Flash.Governs(Default) {
		t.Error("Flash should not govern Default")
	}
}

func TestOrderedIsAscending(t *testing.T) {
	for i := 1; i < len(Ordered); i++ {
		if Ordered[i-1] >= Ordered[i] {
			t.Errorf("Ordered[%d]=%v not below Ordered[%d]=%v", i-1, Ordered[i-1], i, Ordered[i])
		}
	}
}

func TestParseAndText(t *testing.T) {
	for _, c := range append(Ordered, All) {
		text, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", c, err)
		}
		var got Channel
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != c {
			t.Errorf("round trip %v -> %q -> %v", c, text, got)
		}
	}

	if c, err := Parse(" Strobe "); err != nil || c != Strobe {
		t.Errorf("Parse(\" Strobe \") = %v, %v", c, err)
	}
	if _, err := Parse("laser"); err == nil {
		t.Error("Parse(\"laser\") should fail")
	}
}
