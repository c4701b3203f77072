package hue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amimof/huego"
	"github.com/google/uuid"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/config"
	"github.com/NALStudio/NDiscoPlus/internal/eventbus"
	"github.com/NALStudio/NDiscoPlus/internal/interpreter"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

const testEntertainment = "5c0e6a5b-2b9e-4d3e-9d5a-0b2f4e7c1a11"

func TestGamutForModel(t *testing.T) {
	tests := []struct {
		model string
		want  color.Gamut
		ok    bool
	}{
		{"LST001", color.GamutA, true},
		{"LCT001", color.GamutB, true},
		{"LCT015", color.GamutC, true},
		{"XYZ999", color.Gamut{}, false},
	}

	for _, tt := range tests {
		got, ok := GamutForModel(tt.model)
		if ok != tt.ok || got != tt.want {
			t.Errorf("GamutForModel(%q) = %v, %v; want %v, %v", tt.model, got, ok, tt.want, tt.ok)
		}
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		name    string
		color   color.Color
		wantOn  bool
		wantBri uint8
	}{
		{"off", color.MustNew(0.3, 0.3, 0), false, 0},
		{"full", color.MustNew(0.3, 0.3, 1), true, 254},
		{"half", color.MustNew(0.3, 0.3, 0.5), true, 127},
		{"dim rounds up to one", color.MustNew(0.3, 0.3, 0.001), true, 1},
		{"overbright clamps", color.MustNew(0.3, 0.3, 1.5), true, 254},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := State(tt.color)
			if got.On != tt.wantOn || got.Bri != tt.wantBri {
				t.Errorf("State() = on:%v bri:%d, want on:%v bri:%d", got.On, got.Bri, tt.wantOn, tt.wantBri)
			}
			if tt.wantOn && (len(got.Xy) != 2 || got.Xy[0] != float32(0.3)) {
				t.Errorf("State().Xy = %v", got.Xy)
			}
		})
	}
}

type fakeBridge struct {
	mu     sync.Mutex
	lights map[int]*huego.Light
	calls  []call
	fail   bool
}

type call struct {
	number int
	state  huego.State
}

func (f *fakeBridge) GetLightContext(_ context.Context, i int) (*huego.Light, error) {
	l, ok := f.lights[i]
	if !ok {
		return nil, errors.New("not found")
	}
	return l, nil
}

func (f *fakeBridge) SetLightStateContext(_ context.Context, i int, s huego.State) (*huego.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("bridge unavailable")
	}
	f.calls = append(f.calls, call{number: i, state: s})
	return &huego.Response{}, nil
}

func (f *fakeBridge) snapshot() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func TestEnumerate(t *testing.T) {
	bridge := &fakeBridge{lights: map[int]*huego.Light{
		7: {Name: "Desk", ModelID: "LCT001"},
	}}
	cfg := config.HueConfig{
		EntertainmentConfig: testEntertainment,
		Lights: []config.HueLightConfig{
			{Channel: 0, Light: 7, Position: light.Position{X: -0.5}},
			{Channel: 1, Light: 8, Model: "LST001", Name: "Strip", Latency: config.Duration(50 * time.Millisecond)},
			{Channel: 2, Light: 9, Model: "unknown", Name: "Lamp", PhysicalID: "0b7f5d8e-3c1a-4a5b-8e9f-1d2c3b4a5f6e"},
		},
	}

	mappings, err := Enumerate(context.Background(), cfg, bridge)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if len(mappings) != 3 {
		t.Fatalf("got %d mappings, want 3", len(mappings))
	}

	desk := mappings[0]
	if desk.Light.DisplayName != "Desk" || *desk.Light.Gamut != color.GamutB || desk.Number != 7 {
		t.Errorf("desk = %+v", desk)
	}
	if desk.Light.ID != light.HueID(uuid.MustParse(testEntertainment), 0) {
		t.Errorf("desk id = %v", desk.Light.ID)
	}

	strip := mappings[1]
	if *strip.Light.Gamut != color.GamutA {
		t.Error("strip should use gamut A")
	}
	if strip.Light.ExpectedLatency == nil || *strip.Light.ExpectedLatency != 50*time.Millisecond {
		t.Errorf("strip latency = %v", strip.Light.ExpectedLatency)
	}

	lamp := mappings[2]
	if *lamp.Light.Gamut != color.GamutC {
		t.Error("unknown model should fall back to gamut C")
	}
	if lamp.Light.PhysicalID == nil {
		t.Error("lamp physical id missing")
	}

	if got := len(Lights(mappings)); got != 3 {
		t.Errorf("Lights() returned %d lights", got)
	}
}

func TestEnumerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.HueConfig
	}{
		{"bad entertainment id", config.HueConfig{EntertainmentConfig: "nope"}},
		{"duplicate channel", config.HueConfig{
			EntertainmentConfig: testEntertainment,
			Lights: []config.HueLightConfig{
				{Channel: 1, Light: 1, Model: "LCT015", Name: "a"},
				{Channel: 1, Light: 2, Model: "LCT015", Name: "b"},
			},
		}},
		{"missing bridge light", config.HueConfig{
			EntertainmentConfig: testEntertainment,
			Lights:              []config.HueLightConfig{{Channel: 0, Light: 42}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Enumerate(context.Background(), tt.cfg, &fakeBridge{}); err == nil {
				t.Error("Enumerate() error = nil, want error")
			}
		})
	}
}

func testMappings() []Mapping {
	cfg := uuid.MustParse(testEntertainment)
	return []Mapping{
		{Light: light.Light{ID: light.HueID(cfg, 0)}, Number: 1},
		{Light: light.Light{ID: light.HueID(cfg, 1)}, Number: 2},
	}
}

func frameEvent(seq uint64, brightness float64) eventbus.Event {
	cfg := uuid.MustParse(testEntertainment)
	return eventbus.Event{
		Type: eventbus.EventTypeFrame,
		Seq:  seq,
		Payload: interpreter.Frame{Lights: map[light.ID]color.Color{
			light.HueID(cfg, 0): color.MustNew(0.3, 0.3, brightness),
			light.HueID(cfg, 1): color.MustNew(0.4, 0.4, 1),
		}},
	}
}

func TestSink_PushSkipsUnchanged(t *testing.T) {
	bridge := &fakeBridge{}
	s := NewSink(bridge, testMappings(), 1000, time.Second)
	ctx := context.Background()

	first := frameEvent(1, 0.5).Payload.(interpreter.Frame)
	if err := s.push(ctx, first); err != nil {
		t.Fatalf("push() error = %v", err)
	}
	if got := len(bridge.snapshot()); got != 2 {
		t.Fatalf("first push sent %d states, want 2", got)
	}

	second := frameEvent(2, 1).Payload.(interpreter.Frame)
	if err := s.push(ctx, second); err != nil {
		t.Fatalf("push() error = %v", err)
	}
	calls := bridge.snapshot()
	if len(calls) != 3 {
		t.Fatalf("second push total %d states, want 3", len(calls))
	}
	if calls[2].number != 1 || calls[2].state.Bri != 254 {
		t.Errorf("second push sent %+v", calls[2])
	}
}

func TestSink_FailedSendIsRetried(t *testing.T) {
	bridge := &fakeBridge{fail: true}
	s := NewSink(bridge, testMappings(), 1000, time.Second)
	frame := frameEvent(1, 0.5).Payload.(interpreter.Frame)

	if err := s.push(context.Background(), frame); err != nil {
		t.Fatalf("push() error = %v", err)
	}

	bridge.mu.Lock()
	bridge.fail = false
	bridge.mu.Unlock()

	if err := s.push(context.Background(), frame); err != nil {
		t.Fatalf("push() error = %v", err)
	}
	if got := len(bridge.snapshot()); got != 2 {
		t.Errorf("retry sent %d states, want 2", got)
	}
}

func TestSink_HandleFrameKeepsNewest(t *testing.T) {
	s := NewSink(&fakeBridge{}, testMappings(), 1000, time.Second)

	s.HandleFrame(frameEvent(5, 0.5))
	s.HandleFrame(frameEvent(3, 0.1))
	s.HandleFrame(eventbus.Event{Type: eventbus.EventTypeFrame, Seq: 9, Payload: "not a frame"})

	if s.latestSeq != 5 {
		t.Errorf("latestSeq = %d, want 5", s.latestSeq)
	}
}

func TestSink_Run(t *testing.T) {
	bridge := &fakeBridge{}
	s := NewSink(bridge, testMappings(), 1000, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	s.HandleFrame(frameEvent(1, 0.5))

	deadline := time.After(time.Second)
	for len(bridge.snapshot()) < 2 {
		select {
		case <-deadline:
			t.Fatal("sink did not send frame")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
