package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snakeify/audio"
	"snakeify/catalog"
	"snakeify/game/entity"
	"snakeify/game/manager"
	"snakeify/game/types"
	"snakeify/media"
)

// Deps are the collaborators a game talks to. Every field except Catalog may
// be left nil.
type Deps struct {
	Catalog   *catalog.Catalog
	Audio     audio.Loader
	Images    manager.ImageLoader
	Submitter manager.Submitter
	UserID    int
	Stats     *manager.StateManager
	Rand      *rand.Rand
	Logger    *slog.Logger
}

type Options struct {
	GridSize     int
	TickInterval time.Duration
}

// Game owns the session state. All methods run on the caller's event loop;
// only Advance mutates the body, food and score.
type Game struct {
	UUID      string
	Grid      types.Grid
	State     types.State
	Paused    bool
	Snake     *entity.Snake
	Food      *entity.Food
	Score     int
	Direction types.Point // pending, applied at the next tick
	Heading   types.Point // applied at the last tick
	StartTime time.Time
	Cover     *media.Image

	ctx          context.Context
	logger       *slog.Logger
	images       manager.ImageLoader
	stats        *manager.StateManager
	ticker       *Ticker
	collisionMgr *manager.CollisionManager
	foodManager  *manager.FoodManager
	playback     *manager.PlaybackManager
	recorder     *manager.SessionRecorder
}

// New creates a game in the menu state. ctx bounds background score
// submissions.
func New(ctx context.Context, deps Deps, opts Options) *Game {
	if opts.GridSize <= 0 {
		opts.GridSize = types.GridSize
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = types.TickInterval
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	grid := types.NewSquareGrid(opts.GridSize)
	collisionMgr := manager.NewCollisionManager(grid)

	return &Game{
		Grid:         grid,
		State:        types.StateMenu,
		ctx:          ctx,
		logger:       logger,
		images:       deps.Images,
		stats:        deps.Stats,
		ticker:       NewTicker(opts.TickInterval),
		collisionMgr: collisionMgr,
		foodManager:  manager.NewFoodManager(grid, rng, deps.Images, collisionMgr),
		playback:     manager.NewPlaybackManager(deps.Catalog, deps.Audio, rng, logger),
		recorder:     manager.NewSessionRecorder(deps.Submitter, deps.UserID, logger),
	}
}

// Start leaves the menu, or plays again after a game over
func (g *Game) Start(now time.Time) {
	switch g.State {
	case types.StateMenu:
		g.begin(now)
	case types.StateGameOver:
		g.Reset(now)
	}
}

// Reset starts a new game. The playback state carries over.
func (g *Game) Reset(now time.Time) {
	g.begin(now)
}

func (g *Game) begin(now time.Time) {
	g.UUID = uuid.New().String()
	g.StartTime = now
	g.Snake = entity.NewSnake(g.Grid.Center())
	g.Direction = types.Right.ToPoint()
	g.Heading = g.Direction
	g.Score = 0
	g.Food = nil
	g.recorder.Reset()

	g.State = types.StatePlaying
	g.Paused = false
	g.spawnFood()
	g.ticker.Arm(now)
	g.playback.Sync(g.State, g.Paused)

	g.logger.Info("Game started", "game", g.UUID, "grid", g.Grid.Width)
}

// Menu discards the session and rebuilds playback from the first track
func (g *Game) Menu() {
	g.ticker.Disarm()
	g.State = types.StateMenu
	g.Paused = false
	g.Snake = nil
	g.Food = nil
	g.Score = 0
	g.Direction = types.Point{}
	g.Heading = types.Point{}
	g.Cover = nil
	g.recorder.Reset()
	g.playback.Reset()
}

func (g *Game) Pause() {
	if g.State != types.StatePlaying || g.Paused {
		return
	}
	g.Paused = true
	g.ticker.Disarm()
	g.playback.Sync(g.State, g.Paused)
}

func (g *Game) Resume(now time.Time) {
	if g.State != types.StatePlaying || !g.Paused {
		return
	}
	g.Paused = false
	g.ticker.Arm(now)
	g.playback.Sync(g.State, g.Paused)
}

func (g *Game) TogglePause(now time.Time) {
	if g.Paused {
		g.Resume(now)
	} else {
		g.Pause()
	}
}

// SetDirection buffers a turn for the next tick. The reverse of the heading
// applied at the last tick is rejected. It reports whether d was accepted.
func (g *Game) SetDirection(d types.Direction, now time.Time) bool {
	if g.State != types.StatePlaying || !types.CanTurn(g.Heading, d) {
		return false
	}
	p := d.ToPoint()
	if p == g.Direction {
		return true
	}
	g.Direction = p
	if !g.Paused {
		g.ticker.Arm(now)
	}
	return true
}

// Handle applies a frontend action and reports whether the game changed
func (g *Game) Handle(a Action, now time.Time) bool {
	switch a.Kind {
	case ActionTurn:
		return g.SetDirection(a.Dir, now)
	case ActionTogglePause:
		if g.State != types.StatePlaying {
			return false
		}
		g.TogglePause(now)
		return true
	case ActionStart:
		if g.State == types.StatePlaying {
			return false
		}
		g.Start(now)
		return true
	case ActionRestart:
		if g.State != types.StateGameOver {
			return false
		}
		g.Reset(now)
		return true
	case ActionMenu:
		if g.State == types.StateMenu {
			return false
		}
		g.Menu()
		return true
	}
	return false
}

// Update fires at most one tick when one is due and reports whether it did
func (g *Game) Update(now time.Time) bool {
	if g.State != types.StatePlaying || g.Paused || !g.ticker.Due(now) {
		return false
	}
	g.Advance()
	if g.State == types.StatePlaying && !g.Paused {
		g.ticker.Arm(now)
	}
	return true
}

// Advance runs one simulation step
func (g *Game) Advance() {
	if g.State != types.StatePlaying || g.Snake == nil || g.Direction.IsZero() {
		return
	}

	prev := g.Snake.GetHead()
	pos := g.collisionMgr.NextHead(g.Snake, g.Direction)
	g.Heading = g.Direction

	if g.collisionMgr.IsSelfCollision(pos, g.Snake) {
		g.gameOver()
		return
	}

	head := entity.Segment{Pos: pos}
	if g.collisionMgr.IsFoodCollision(pos, g.Food) {
		g.eat(head)
		return
	}

	head.Track = prev.Track
	head.ImgURL = prev.ImgURL
	head.Image = prev.Image
	g.Snake.Move(head)
	g.Snake.RemoveTail()
}

func (g *Game) eat(head entity.Segment) {
	food := g.Food
	g.Score++

	head.Track = food.Track
	head.ImgURL = food.Track.Thumbnail()
	head.Image = food.Image
	if head.Image == nil && g.images != nil {
		head.Image = g.images.LoadImage(head.ImgURL)
	}
	g.Snake.Move(head)

	g.recorder.Record(food.Track, head.ImgURL)
	current := g.playback.AdvanceTrack()
	if g.images != nil {
		g.Cover = g.images.LoadImage(current.Cover())
	}

	g.Food = nil
	g.spawnFood()

	g.logger.Debug("Food eaten", "game", g.UUID, "score", g.Score, "track", food.Track, "length", g.Snake.Len())
}

func (g *Game) spawnFood() {
	food, err := g.foodManager.Spawn(g.Snake, g.playback.Upcoming())
	if err != nil {
		if errors.Is(err, manager.ErrGridFull) {
			g.logger.Debug("No room for food", "game", g.UUID, "length", g.Snake.Len())
		}
		return
	}
	g.Food = food
}

func (g *Game) gameOver() {
	g.State = types.StateGameOver
	g.ticker.Disarm()
	g.playback.Sync(g.State, g.Paused)

	sub := g.recorder.Finalize(g.ctx, g.Score)
	best := false
	if g.stats != nil {
		best = g.stats.AddToHistory(manager.ScoreRecord{
			UUID:      g.UUID,
			Score:     g.Score,
			Eaten:     len(sub.EatenSongs),
			StartedAt: g.StartTime,
			EndedAt:   time.Now(),
		})
	}

	g.logger.Info("Game over", "game", g.UUID, "score", g.Score, "highScore", best, "verdict", Verdict(g.Score))
}

// History returns the tracks eaten this game, in order
func (g *Game) History() []manager.Entry {
	return g.recorder.Entries()
}

func (g *Game) HighScore() int {
	if g.stats == nil {
		return g.Score
	}
	return max(g.stats.GetHighScore(), g.Score)
}

func (g *Game) CurrentTrack() *catalog.Track {
	return g.playback.Current()
}

func (g *Game) NextTrack() *catalog.Track {
	return g.playback.Next()
}

// Close stops playback and waits for pending score submissions
func (g *Game) Close() {
	g.ticker.Disarm()
	g.playback.Close()
	g.recorder.Wait()
}
