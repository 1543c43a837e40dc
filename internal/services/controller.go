package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"routine-planner-service/internal/domain"
	"routine-planner-service/internal/events"
	"routine-planner-service/internal/motion"
	"routine-planner-service/internal/platform/obs"
	"routine-planner-service/internal/ports"
)

// Config holds the profile shaping and dispatch parameters of the controller.
type Config struct {
	TurnTimeS            float64 // fixed duration of every heading correction
	TurnAccelFraction    float64
	TurnSamples          int
	ForwardAccelFraction float64
	ForwardSamples       int
	// DispatchMargin is added to a profile's span to form the deadline on
	// each move/turn call. Expiry is a dispatch failure.
	DispatchMargin time.Duration
}

func (c Config) turnParams() motion.Params {
	return motion.Params{TimeS: c.TurnTimeS, AccelFraction: c.TurnAccelFraction, Samples: c.TurnSamples}
}

func (c Config) forwardParams(timeS float64) motion.Params {
	return motion.Params{TimeS: timeS, AccelFraction: c.ForwardAccelFraction, Samples: c.ForwardSamples}
}

// Controller sequences routine execution: it resolves a routine into
// waypoints, generates turn and move profiles per segment, and dispatches
// them to the actuation interfaces in order.
//
// Only one routine runs at a time; concurrent starts are rejected with
// ErrBusy, not queued. The paused flag is sampled between segments only and
// aborts the routine (it is not a resumable suspend).
type Controller struct {
	mu          sync.Mutex
	inExecution bool
	paused      bool
	runID       string
	routineID   int

	cfg      Config
	routines ports.RoutineSource
	edges    ports.EdgeSource
	mover    ports.Mover
	turner   ports.Turner
	bus      ports.Announcer
	status   *StatusStore
}

// Snapshot is a point-in-time copy of the execution state.
type Snapshot struct {
	InExecution bool
	Paused      bool
	RunID       string
	RoutineID   int
}

func NewController(
	cfg Config,
	routines ports.RoutineSource,
	edges ports.EdgeSource,
	mover ports.Mover,
	turner ports.Turner,
	bus ports.Announcer,
	status *StatusStore,
) (*Controller, error) {
	// Reject bad profile shape up front so the segment loop never trips
	// motion.ErrInvalidProfile mid-routine.
	if err := cfg.turnParams().Validate(); err != nil {
		return nil, fmt.Errorf("new controller: turn profile: %w", err)
	}
	if err := cfg.forwardParams(1).Validate(); err != nil {
		return nil, fmt.Errorf("new controller: forward profile: %w", err)
	}
	if cfg.DispatchMargin <= 0 {
		return nil, fmt.Errorf("new controller: dispatch margin must be > 0")
	}

	return &Controller{
		cfg:      cfg,
		routines: routines,
		edges:    edges,
		mover:    mover,
		turner:   turner,
		bus:      bus,
		status:   status,
	}, nil
}

// Start accepts a routine for asynchronous execution and returns its run id.
// It fails with ErrUnknownRoutine for ids outside the catalog and ErrBusy
// while another routine is running.
func (c *Controller) Start(id int) (string, error) {
	if _, ok := c.routines.Routine(id); !ok {
		log.Printf("start rejected: routine=%d err=unknown", id)
		return "", fmt.Errorf("start routine %d: %w", id, ErrUnknownRoutine)
	}

	runID, err := c.begin(id)
	if err != nil {
		return "", err
	}

	go func() {
		if err := c.run(context.Background(), id, runID); err != nil {
			log.Printf("routine run failed: routine=%d run_id=%s err=%v", id, runID, err)
		}
	}()

	return runID, nil
}

// Run executes a routine synchronously. It is the same code path Start
// launches in the background.
func (c *Controller) Run(ctx context.Context, id int) error {
	if _, ok := c.routines.Routine(id); !ok {
		return fmt.Errorf("start routine %d: %w", id, ErrUnknownRoutine)
	}

	runID, err := c.begin(id)
	if err != nil {
		return err
	}
	return c.run(ctx, id, runID)
}

// Pause requests that the running routine stop before its next segment.
// Idempotent: setting the flag when already set is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
	log.Printf("pause requested")
}

// State returns a snapshot of the execution state.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		InExecution: c.inExecution,
		Paused:      c.paused,
		RunID:       c.runID,
		RoutineID:   c.routineID,
	}
}

// begin acquires the single-routine execution gate.
func (c *Controller) begin(id int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inExecution {
		log.Printf("start rejected: routine=%d err=busy", id)
		return "", ErrBusy
	}

	c.inExecution = true
	c.runID = uuid.NewString()
	c.routineID = id
	return c.runID, nil
}

// finish resets the execution state. It runs at the end of every routine
// regardless of outcome so the controller can never stay stuck in execution.
func (c *Controller) finish() {
	c.mu.Lock()
	c.inExecution = false
	c.paused = false
	c.runID = ""
	c.routineID = 0
	c.mu.Unlock()
}

// consumePause atomically reads and clears the pause flag.
func (c *Controller) consumePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return false
	}
	c.paused = false
	return true
}

func (c *Controller) run(ctx context.Context, id int, runID string) (err error) {
	defer c.finish()
	defer obs.Time(ctx, "routine_run")(&err)
	// Registered after the timing defer so the recover runs first and the
	// timing line sees the panic as a failed run.
	defer func() {
		// A fault in the loop must never leave the controller in execution.
		if r := recover(); r != nil {
			log.Printf("routine run panic: routine=%d run_id=%s err=%v", id, runID, r)
			err = fmt.Errorf("run routine %d: panic: %v", id, r)
		}
	}()

	stops, ok := c.routines.Routine(id)
	if !ok {
		return fmt.Errorf("run routine %d: %w", id, ErrUnknownRoutine)
	}

	edges, err := c.edges.LoadEdges(ctx)
	if err != nil {
		return fmt.Errorf("run routine %d: load edges: %w", id, err)
	}

	route, err := Resolve(stops, edges)
	if err != nil {
		// No partial execution is attempted on resolution failure.
		log.Printf("resolution failed: routine=%d run_id=%s err=%v", id, runID, err)
		c.bus.Announce(events.TopicRoutineStopped, events.RunRef{RunID: runID, RoutineID: id, Reason: "resolution failed"})
		return fmt.Errorf("run routine %d: %w", id, err)
	}

	log.Printf(
		"routine resolved: routine=%d run_id=%s waypoints=%d distance_m=%.2f duration_s=%.2f difficulty=%.2f",
		id, runID, len(route.Coords), route.TotalDistanceM, route.TotalDurationS, route.MeanDifficulty,
	)
	c.bus.Announce(events.TopicRouteResolved, domain.RouteAnnouncement{
		RunID:          runID,
		RoutineID:      id,
		Waypoints:      route.Coords,
		TotalDistanceM: route.TotalDistanceM,
		TotalDurationS: route.TotalDurationS,
		MeanDifficulty: route.MeanDifficulty,
	})
	c.bus.Announce(events.TopicRecording, true)

	var (
		runErr  error
		stopped bool
	)

	// Direct placement at the first waypoint, no profile.
	log.Printf("placing robot at origin: run_id=%s x=%d y=%d", runID, route.Coords[0].X, route.Coords[0].Y)
	origin := []domain.MotionSample{{Index: 0, Position: route.Coords[0]}}
	if dErr := c.dispatchMove(ctx, 0, origin); dErr != nil {
		runErr = dErr
	} else {
		c.bus.Announce(events.TopicSpeaker, events.SpeakerRoutineStart)
		stopped, runErr = c.runSegments(ctx, route)
	}

	switch {
	case runErr != nil:
		log.Printf("routine aborted: routine=%d run_id=%s err=%v", id, runID, runErr)
		c.bus.Announce(events.TopicRoutineStopped, events.RunRef{RunID: runID, RoutineID: id, Reason: "dispatch failed"})
	case stopped:
		log.Printf("routine execution has been stopped: routine=%d run_id=%s", id, runID)
		c.bus.Announce(events.TopicRoutineStopped, events.RunRef{RunID: runID, RoutineID: id, Reason: "paused"})
	default:
		log.Printf("routine has finished: routine=%d run_id=%s", id, runID)
		c.bus.Announce(events.TopicRoutineFinished, events.RunRef{RunID: runID, RoutineID: id})
	}

	c.bus.Announce(events.TopicSpeaker, events.SpeakerRoutineEnd)
	c.bus.Announce(events.TopicRecording, false)

	return runErr
}

// runSegments walks the resolved route hop by hop. It reports stopped=true
// when a pause aborted the loop, or an error when a profile dispatch failed.
func (c *Controller) runSegments(ctx context.Context, route *domain.ResolvedRoute) (stopped bool, err error) {
	for idx := 0; idx < len(route.Coords)-1; idx++ {
		// Pause is sampled between segments only, never mid-dispatch.
		if c.consumePause() {
			return true, nil
		}

		heading := HeadingDeg(route.Coords[idx], route.Coords[idx+1])
		dang := NormalizeDeltaDeg(heading - c.status.Latest().YawDeg)

		if int(math.Round(dang)) != 0 {
			log.Printf("turning robot to reference %d: delta_deg=%.1f", idx+1, dang)

			turnSamples, tErr := motion.Turn(dang, c.cfg.turnParams())
			if tErr != nil {
				return false, fmt.Errorf("segment %d: turn profile: %w", idx, tErr)
			}
			if dErr := c.dispatchTurn(ctx, idx, turnSamples); dErr != nil {
				return false, dErr
			}
		}

		log.Printf("moving robot to landmark %d: x=%d y=%d duration_s=%.2f",
			idx+1, route.Coords[idx+1].X, route.Coords[idx+1].Y, route.SegmentDurations[idx])

		moveSamples, mErr := motion.Linear(route.Coords[idx], route.Coords[idx+1], c.cfg.forwardParams(route.SegmentDurations[idx]))
		if mErr != nil {
			return false, fmt.Errorf("segment %d: move profile: %w", idx, mErr)
		}
		if dErr := c.dispatchMove(ctx, idx, moveSamples); dErr != nil {
			return false, dErr
		}
	}

	return false, nil
}

func (c *Controller) dispatchMove(ctx context.Context, segment int, samples []domain.MotionSample) error {
	span := 0.0
	if n := len(samples); n > 0 {
		span = samples[n-1].TimeS
	}
	ctx, cancel := c.dispatchContext(ctx, span)
	defer cancel()

	if err := c.mover.Move(ctx, samples); err != nil {
		return &DispatchError{Op: "move", Segment: segment, Err: err}
	}
	return nil
}

func (c *Controller) dispatchTurn(ctx context.Context, segment int, samples []domain.TurnSample) error {
	span := 0.0
	if n := len(samples); n > 0 {
		span = samples[n-1].TimeS
	}
	ctx, cancel := c.dispatchContext(ctx, span)
	defer cancel()

	if err := c.turner.Turn(ctx, samples); err != nil {
		return &DispatchError{Op: "turn", Segment: segment, Err: err}
	}
	return nil
}

// dispatchContext bounds a blocking actuation call by the profile span plus
// the configured margin.
func (c *Controller) dispatchContext(ctx context.Context, spanS float64) (context.Context, context.CancelFunc) {
	timeout := time.Duration(spanS*float64(time.Second)) + c.cfg.DispatchMargin
	return context.WithTimeout(ctx, timeout)
}
