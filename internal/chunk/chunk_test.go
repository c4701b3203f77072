package chunk

import (
	"slices"
	"testing"
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/effect"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func collect(c *Collection, at time.Duration) []effect.Effect {
	return slices.Collect(c.EffectsAt(at))
}

func TestIndex(t *testing.T) {
	tests := []struct {
		at   time.Duration
		want int
	}{
		{0, 0},
		{ms(999), 0},
		{time.Second, 1},
		{ms(5600), 5},
		{-ms(1), -1},
		{-time.Second, -1},
		{-ms(1001), -2},
	}
	for _, tt := range tests {
		if got := Index(tt.at); got != tt.want {
			t.Errorf("Index(%v) = %d, want %d", tt.at, got, tt.want)
		}
	}
}

func TestChunkMembership(t *testing.T) {
	e := effect.New(light.ScreenID(1, 0), ms(800), ms(500))
	c := NewBuilder().AddEffects(e).Build()

	if c.ChunkCount() != 2 {
		t.Fatalf("ChunkCount() = %d, want 2", c.ChunkCount())
	}
	for _, at := range []time.Duration{0, ms(500), time.Second, ms(1999)} {
		if got := collect(c, at); len(got) != 1 || got[0] != e {
			t.Errorf("EffectsAt(%v) = %v, want the effect", at, got)
		}
	}
	for _, at := range []time.Duration{-ms(1), 2 * time.Second, time.Hour} {
		if got := collect(c, at); len(got) != 0 {
			t.Errorf("EffectsAt(%v) = %v, want none", at, got)
		}
	}
}

func TestNegativeStartClampsToFirstChunk(t *testing.T) {
	e := effect.New(light.ScreenID(1, 0), 0, ms(300)).WithFade(ms(500), 0)
	c := NewBuilder().AddEffects(e).Build()

	if c.ChunkCount() != 1 {
		t.Fatalf("ChunkCount() = %d, want 1", c.ChunkCount())
	}
	if got := collect(c, 0); len(got) != 1 {
		t.Errorf("EffectsAt(0) = %v, want the effect", got)
	}
	if !c.At(-ms(200)).Empty() {
		t.Error("negative times should give an empty view")
	}
}

func TestEffectsKeepFlattenedOrder(t *testing.T) {
	id := light.ScreenID(1, 0)
	a := effect.NewBrightness(id, ms(100), time.Second, 0.2)
	b := effect.NewBrightness(id, ms(1500), time.Second, 0.4)
	c := effect.NewBrightness(id, ms(1200), ms(100), 0.8)

	col := NewBuilder().AddEffects(a, b, c).Build()
	got := collect(col, ms(1300))
	want := []effect.Effect{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("EffectsAt(1.3s) returned %d effects, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EffectsAt(1.3s)[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBackgroundDisabledPrecision(t *testing.T) {
	c := NewBuilder().AddDisabled(effect.Interval{Start: 5 * time.Second, End: ms(5500)}).Build()

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{ms(4999), false},
		{5 * time.Second, true},
		{ms(5499), true},
		{ms(5500), false},
		{ms(5600), false},
		{time.Minute, false},
	}
	for _, tt := range tests {
		if got := c.BackgroundDisabledAt(tt.at); got != tt.want {
			t.Errorf("BackgroundDisabledAt(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestBackgroundDisabledAcrossChunks(t *testing.T) {
	c := NewBuilder().
		AddDisabled(effect.Interval{Start: ms(1500), End: ms(3200)}).
		AddDisabled(effect.Interval{Start: ms(3500), End: ms(3700)}).
		Build()

	for _, at := range []time.Duration{ms(1500), ms(2500), ms(3100), ms(3600)} {
		if !c.BackgroundDisabledAt(at) {
			t.Errorf("BackgroundDisabledAt(%v) = false, want true", at)
		}
	}
	for _, at := range []time.Duration{ms(1400), ms(3300), ms(3800)} {
		if c.BackgroundDisabledAt(at) {
			t.Errorf("BackgroundDisabledAt(%v) = true, want false", at)
		}
	}
}

func TestTransitionsSortedPerLight(t *testing.T) {
	a, b := light.ScreenID(2, 0), light.ScreenID(2, 1)
	col := color.MustNew(0.3, 0.3, 0.1)

	c := NewBuilder().AddTransitions(
		effect.NewTransition(a, 20*time.Second, time.Second, col),
		effect.NewTransition(b, 5*time.Second, time.Second, col),
		effect.NewTransition(a, 0, time.Second, col),
		effect.NewTransition(a, 10*time.Second, time.Second, col),
	).Build()

	got := c.Transitions(a)
	if len(got) != 3 {
		t.Fatalf("Transitions(a) = %d, want 3", len(got))
	}
	for i, want := range []time.Duration{0, 10 * time.Second, 20 * time.Second} {
		if got[i].Start != want {
			t.Errorf("Transitions(a)[%d].Start = %v, want %v", i, got[i].Start, want)
		}
	}
	if len(c.Transitions(b)) != 1 {
		t.Errorf("Transitions(b) = %d, want 1", len(c.Transitions(b)))
	}
	if len(c.TransitionLights()) != 2 {
		t.Errorf("TransitionLights() = %v", c.TransitionLights())
	}
}

func TestBuildIsSnapshot(t *testing.T) {
	b := NewBuilder().AddEffects(effect.New(light.ScreenID(1, 0), 0, time.Second))
	first := b.Build()
	b.AddEffects(effect.New(light.ScreenID(1, 0), 0, time.Second))

	if got := len(first.Effects()); got != 1 {
		t.Errorf("built collection changed after builder reuse: %d effects", got)
	}
}

func TestFromAPIAndExport(t *testing.T) {
	records := []light.Record{light.NewRecord(light.Light{ID: light.ScreenID(1, 0)})}
	api := effect.NewAPI(effect.DefaultConfig(), records)
	api.Background.DisableFor(effect.NewInterval(time.Second, time.Second))
	api.Background.Add(effect.NewTransition(light.ScreenID(1, 0), 0, time.Second, color.MustNew(0.3, 0.3, 0.1)))
	if err := api.ClearForStrobes([]effect.Interval{effect.NewInterval(0, time.Second)}); err != nil {
		t.Fatal(err)
	}

	c := FromAPI(api, time.Minute)
	exp := c.Export("track-1")
	if exp.TrackID != "track-1" {
		t.Errorf("TrackID = %q", exp.TrackID)
	}
	if len(exp.Effects) != len(api.Flattened()) {
		t.Errorf("exported %d effects, want %d", len(exp.Effects), len(api.Flattened()))
	}
	if len(exp.BackgroundDisabled) != 1 {
		t.Errorf("exported %d disabled intervals, want 1", len(exp.BackgroundDisabled))
	}
	if len(c.Transitions(light.ScreenID(1, 0))) != 1 {
		t.Error("transition missing from index")
	}
}

func TestBuildBoundsChunkCount(t *testing.T) {
	id := light.ScreenID(1, 0)
	long := effect.New(id, 0, 5_000_000*time.Second)
	far := effect.New(id, 5_000_000*time.Second, time.Second)

	tests := []struct {
		name   string
		length time.Duration
		want   int
	}{
		{"default bound", 0, Index(MaxLength) + 1},
		{"track length", 90 * time.Second, 91},
		{"beyond max ignored", 2 * MaxLength, Index(MaxLength) + 1},
	}
	for _, tt := range tests {
		c := NewBuilder().Limit(tt.length).AddEffects(long, far).Build()
		if got := c.ChunkCount(); got != tt.want {
			t.Errorf("%s: ChunkCount() = %d, want %d", tt.name, got, tt.want)
		}
		if len(c.Effects()) != 2 {
			t.Errorf("%s: effects dropped from collection", tt.name)
		}
	}
}

func TestLimitClipsSpanningEntries(t *testing.T) {
	id := light.ScreenID(1, 0)
	c := NewBuilder().Limit(3 * time.Second).
		AddEffects(effect.New(id, 2*time.Second, 10*time.Second)).
		AddDisabled(effect.NewInterval(time.Second, time.Hour)).
		Build()

	if got := c.ChunkCount(); got != 4 {
		t.Fatalf("ChunkCount() = %d, want 4", got)
	}
	if n := len(collect(c, ms(3500))); n != 1 {
		t.Errorf("last chunk has %d effects, want 1", n)
	}
	if !c.BackgroundDisabledAt(ms(3500)) {
		t.Error("disabled interval missing from last chunk")
	}
	if n := len(collect(c, 5*time.Second)); n != 0 {
		t.Errorf("past limit: %d effects, want 0", n)
	}
}
