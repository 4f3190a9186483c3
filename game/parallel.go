package game

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/systems"
	"github.com/AdrianBisson/YEN/telemetry"
)

// parallelThreshold is the minimum due-shadow count to use parallel
// steering. Below this, single-threaded is faster than the goroutine
// overhead.
const parallelThreshold = 64

// steerSnapshot captures the read-only steering inputs for one shadow.
type steerSnapshot struct {
	idx    int // position in g.shadows
	in     systems.SteerInput
	params systems.SteerParams
}

// steerChunk is a range of snapshots for one worker to process.
type steerChunk struct {
	start, end int
}

// steerPool computes shadow steering across persistent workers. Inputs
// are snapshotted sequentially, computed in parallel, and applied in
// order, so results are deterministic for a given seed regardless of
// worker count.
type steerPool struct {
	snapshots  []steerSnapshot
	intents    []systems.SteerOutput
	nibbles    []r3.Vec // shared read-only during compute
	numWorkers int

	workChan chan steerChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newSteerPool() *steerPool {
	return &steerPool{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]steerSnapshot, 0, 64),
		intents:    make([]systems.SteerOutput, 0, 64),
	}
}

// startWorkers launches the persistent worker goroutines.
func (p *steerPool) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan steerChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *steerPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *steerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// computeChunk steers a range of snapshots. Pure reads of pool state;
// each index writes only its own intent slot.
func (p *steerPool) computeChunk(i0, i1 int) {
	for i := i0; i < i1; i++ {
		snap := &p.snapshots[i]
		p.intents[i] = systems.Steer(snap.in, p.nibbles, snap.params)
	}
}

// dispatch splits n snapshots across the workers and waits for all of
// them.
func (p *steerPool) dispatch(n int) {
	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		p.workChan <- steerChunk{start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}

// steerShadows steers the due shadows as one batch.
func (g *Game) steerShadows(due []int, nowMs float64) {
	p := g.steer
	sc := g.cfg.Shadow

	g.nibbleBuf = g.nibbles.Positions(g.nibbleBuf[:0])
	p.nibbles = g.nibbleBuf

	// Phase A: snapshot inputs single-threaded. Jitter comes from the
	// game RNG here, before any goroutine touches the batch.
	p.snapshots = p.snapshots[:0]
	for _, idx := range due {
		s := g.shadows[idx]
		p.snapshots = append(p.snapshots, steerSnapshot{
			idx: idx,
			in: systems.SteerInput{
				Pos:        s.HeadPos(),
				Yaw:        s.Yaw,
				Pitch:      s.Pitch,
				Time:       nowMs / 1000,
				Jitter:     g.rng.Float64()*2 - 1,
				Reflecting: s.Reflecting(nowMs),
				TargetDir:  s.TargetDir,
			},
			params: systems.SteerParams{
				Half:            g.cfg.Arena.Half,
				WallBuffer:      sc.WallBuffer * s.Traits.WallBufferFactor(),
				SeekGain:        sc.SeekGain * s.Traits.SeekGainFactor(),
				PitchGainFactor: sc.PitchGainFactor,
				WallGain:        sc.WallAvoidGain,
				JitterScale:     sc.JitterScale * s.Traits.JitterFactor(),
				EatRadius:       sc.EatSlowRadius,
				WanderAmp:       sc.WanderAmp,
				WanderRate:      sc.WanderRate,
			},
		})
	}

	n := len(p.snapshots)
	if n == 0 {
		return
	}
	if cap(p.intents) < n {
		p.intents = make([]systems.SteerOutput, n)
	}
	p.intents = p.intents[:n]

	// Phase B: compute.
	if n < parallelThreshold {
		p.computeChunk(0, n)
	} else {
		p.dispatch(n)
	}

	// Phase C: apply in snapshot order. The new heading takes effect on
	// the shadow's next movement tick.
	for k := range p.snapshots {
		snap := &p.snapshots[k]
		out := p.intents[k]
		s := g.shadows[snap.idx]

		s.Yaw = out.Yaw
		s.Pitch = out.Pitch
		s.speedFactor = out.SpeedFactor

		// A moved position means steering clamped the head back inside
		// the wall buffer.
		if out.Pos != snap.in.Pos {
			g.moveHead(s, out.Pos)
			g.collector.RecordWallClamp()
			g.lifeTracker.RecordWallClamp(s.ID)
			g.emit(telemetry.NewWallClampEvent(g.tick, s.ID, out.Pos))
		}
	}
}

// moveHead relocates a snake's head sample in place, without advancing
// the trail.
func (g *Game) moveHead(s *Snake, pos r3.Vec) {
	s.Trail[0] = pos
	g.posMap.Get(s.Head).Vec = pos
	g.index.Insert(s.Head, pos)
}
