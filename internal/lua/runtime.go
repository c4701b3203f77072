package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/NALStudio/NDiscoPlus/internal/lua/modules"
)

// ErrRuntimeClosed is returned when the Lua runtime is closed
var ErrRuntimeClosed = errors.New("lua runtime closed")

// ErrNoGenerator is returned when the loaded script has no generate function.
var ErrNoGenerator = errors.New("script does not define generate(track)")

// LuaWork represents work to be executed on the Lua VM
// All Lua execution MUST go through this to ensure thread safety
type LuaWork func(ctx context.Context)

// Runtime manages the Lua VM with single-threaded execution.
// Effect scripts define a global generate(track) that authors effects
// through the ndp, effects and background modules.
type Runtime struct {
	L       *lua.LState
	session *modules.SessionRef

	// Work queue for thread-safe Lua execution
	workQueue chan LuaWork

	// Closing this channel signals senders to stop
	closing   chan struct{}
	closeOnce sync.Once
}

// NewRuntime creates a new Lua runtime
func NewRuntime() *Runtime {
	r := &Runtime{
		L:         lua.NewState(),
		session:   &modules.SessionRef{},
		workQueue: make(chan LuaWork, 16),
		closing:   make(chan struct{}),
	}

	r.registerModules()

	return r
}

// Close signals the runtime to stop accepting new work and closes the Lua state.
func (r *Runtime) Close() {
	r.closeOnce.Do(func() {
		close(r.closing)
	})
	r.L.Close()
}

// Do queues work to be executed on the Lua VM (thread-safe, non-blocking)
// Returns false if the runtime is closing, queue is full, or context is cancelled.
func (r *Runtime) Do(ctx context.Context, work LuaWork) bool {
	select {
	case <-r.closing:
		log.Warn().Msg("Lua runtime closing, dropping work")
		return false
	default:
	}

	select {
	case <-r.closing:
		log.Warn().Msg("Lua runtime closing, dropping work")
		return false
	case <-ctx.Done():
		log.Warn().Msg("Context cancelled, dropping Lua work")
		return false
	case r.workQueue <- work:
		return true
	default:
		log.Warn().Msg("Lua work queue full, dropping work")
		return false
	}
}

// DoSyncWithResult queues work, waits for space, and waits for the result.
func (r *Runtime) DoSyncWithResult(ctx context.Context, work func(context.Context) error) error {
	done := make(chan error, 1)
	wrappedWork := LuaWork(func(c context.Context) {
		done <- work(c)
	})

	select {
	case <-r.closing:
		return ErrRuntimeClosed
	case <-ctx.Done():
		return ctx.Err()
	case r.workQueue <- wrappedWork:
	}

	select {
	case <-r.closing:
		return ErrRuntimeClosed
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (r *Runtime) registerModules() {
	r.L.PreloadModule("log", modules.NewLogModule().Loader)
	r.L.PreloadModule("ndp", modules.NewNDPModule(r.session).Loader)
	r.L.PreloadModule("effects", modules.NewEffectsModule(r.session).Loader)
	r.L.PreloadModule("background", modules.NewBackgroundModule(r.session).Loader)
}

// Run starts the Lua worker goroutine - this is the ONLY goroutine that touches Lua.
// Exits when context is cancelled or runtime is closed.
func (r *Runtime) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.drainQueue(ctx)
			return
		case <-r.closing:
			r.drainQueue(ctx)
			return
		case work := <-r.workQueue:
			r.executeWork(ctx, work)
		}
	}
}

// drainQueue processes any remaining work in the queue before exiting
func (r *Runtime) drainQueue(ctx context.Context) {
	for {
		select {
		case work := <-r.workQueue:
			r.executeWork(ctx, work)
		default:
			return
		}
	}
}

// executeWork runs a single work item with panic recovery
func (r *Runtime) executeWork(ctx context.Context, work LuaWork) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Msg("Lua work panicked - worker continuing")
		}
	}()
	r.L.SetContext(ctx)
	work(ctx)
}

// LoadScript loads and executes a Lua script (must be called before Run)
func (r *Runtime) LoadScript(path string) error {
	log.Info().Str("path", path).Msg("Loading effect script")

	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("failed to execute Lua script: %w", err)
	}
	return r.checkGenerator()
}

// LoadString loads a script from source (must be called before Run)
func (r *Runtime) LoadString(source string) error {
	if err := r.L.DoString(source); err != nil {
		return fmt.Errorf("failed to execute Lua script: %w", err)
	}
	return r.checkGenerator()
}

func (r *Runtime) checkGenerator() error {
	if r.L.GetGlobal("generate").Type() != lua.LTFunction {
		return ErrNoGenerator
	}
	log.Info().Msg("Effect script loaded successfully")
	return nil
}

// Generate runs the script's generate(track) against session on the Lua worker.
func (r *Runtime) Generate(ctx context.Context, session *modules.Session) error {
	return r.DoSyncWithResult(ctx, func(context.Context) error {
		r.session.Set(session)
		defer r.session.Set(nil)

		fn := r.L.GetGlobal("generate")
		if fn.Type() != lua.LTFunction {
			return ErrNoGenerator
		}

		err := r.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, modules.TrackTable(r.L, session.Track))
		if err != nil {
			return fmt.Errorf("generate %s: %w", session.Track.ID, err)
		}

		log.Debug().
			Str("track_id", session.Track.ID).
			Int("effects", len(session.API.Flattened())).
			Int("transitions", len(session.API.Background.Transitions())).
			Msg("Effect script finished")
		return nil
	})
}
