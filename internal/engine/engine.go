// Package engine implements the game session state machine and economy.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/bunbaker/bunbakery/internal/customer"
	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
	"github.com/bunbaker/bunbakery/internal/order"
	"github.com/bunbaker/bunbakery/internal/station"
)

// State is the current game screen.
type State int

const (
	StateMenu State = iota
	StateTutorial
	StatePlaying
	StateGameOver
	StateShop
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateTutorial:
		return "tutorial"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	case StateShop:
		return "shop"
	default:
		return "unknown"
	}
}

// Tone classifies a transient message for rendering.
type Tone int

const (
	ToneInfo Tone = iota
	ToneGood
	ToneBad
)

// Message is the transient feedback line shown above the kitchen.
type Message struct {
	Text  string
	Tone  Tone
	until time.Time
}

// BonusText is a short-lived floating score popup.
type BonusText struct {
	Text string
	born time.Time
}

// Age returns how long the popup has been alive.
func (b BonusText) Age(now time.Time) time.Duration { return now.Sub(b.born) }

const (
	// minStack is the smallest stack that counts as a burger.
	minStack = 3
	// tickStep is the fixed customer-accumulator step. The update loop
	// converts wall-clock time into this many whole steps per frame.
	tickStep = time.Second / 60
	// bonusLifespan is how long floating popups stay visible.
	bonusLifespan = 2 * time.Second

	defaultMessageFor  = 2 * time.Second
	defaultCustomerGap = 2 * time.Second
	defaultClearDelay  = 1500 * time.Millisecond
)

// Option configures the engine.
type Option func(*Engine)

// WithCustomerGap sets the pause between a served customer and the next one.
func WithCustomerGap(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.customerGap = d
		}
	}
}

// WithClearDelay sets the pause before a rejected burger stack is cleared.
func WithClearDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.clearDelay = d
		}
	}
}

// Engine owns the full game session: screen state, economy, burger stack,
// stations, the active customer, and persistence. It depends only on
// interfaces and is fully testable with a manual clock and a memory store.
type Engine struct {
	catalog  domain.Catalog
	store    domain.ProgressStore
	notifier domain.Notifier
	clk      domain.Clock
	rng      *rand.Rand
	log      *logger.Logger

	runID    string
	state    State
	progress *domain.Progress

	score int
	level int
	money int

	stack []*domain.Instance
	held  *domain.Instance

	grill *station.Station
	board *station.Station
	ready map[station.Kind]*domain.Instance

	gen  *order.Generator
	cust *customer.Customer

	// nextActionAt schedules the post-serve transition: a new customer
	// after a success, a stack clear after a rejection. Zero when idle.
	nextActionAt time.Time

	msg     *Message
	bonuses []BonusText

	items        []Item
	tutorialStep int

	lastUpdate time.Time
	tickDebt   time.Duration

	customerGap time.Duration
	clearDelay  time.Duration
}

// New creates an engine, validates the catalog, and loads saved progress.
func New(ctx context.Context, catalog domain.Catalog, store domain.ProgressStore, notifier domain.Notifier, clk domain.Clock, rng *rand.Rand, log *logger.Logger, opts ...Option) (*Engine, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	progress, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}

	e := &Engine{
		catalog:     catalog,
		store:       store,
		notifier:    notifier,
		clk:         clk,
		rng:         rng,
		log:         log,
		runID:       generateRunID(),
		state:       StateMenu,
		progress:    progress,
		money:       progress.Money,
		level:       1,
		ready:       make(map[station.Kind]*domain.Instance),
		customerGap: defaultCustomerGap,
		clearDelay:  defaultClearDelay,
	}
	for _, opt := range opts {
		opt(e)
	}

	speed := thermalSpeed(progress.UpgradeLevel(domain.UpgradeGrillSpeed))
	e.grill = station.New(station.Thermal, catalog, clk, notifier, log, station.WithSpeed(speed))
	e.board = station.New(station.Cutting, catalog, clk, notifier, log)
	e.gen = order.NewGenerator(catalog, clk, rng, log)
	e.rebuildShop()

	log.Info("engine ready (run %s, high score %d, $%d banked)", e.runID, progress.HighScore, progress.Money)
	return e, nil
}

// thermalSpeed maps the grill speed upgrade level to a duration divisor.
// Level 1 is nominal; each level shaves a further quarter off.
func thermalSpeed(level int) float64 {
	return 1 + 0.25*float64(level-1)
}

// State returns the current screen.
func (e *Engine) State() State { return e.state }

// Score returns the running score of the current session.
func (e *Engine) Score() int { return e.score }

// Level returns the current difficulty level.
func (e *Engine) Level() int { return e.level }

// Money returns the player's wallet.
func (e *Engine) Money() int { return e.money }

// HighScore returns the persisted best score.
func (e *Engine) HighScore() int { return e.progress.HighScore }

// Stack returns the burger under construction, bottom first.
func (e *Engine) Stack() []*domain.Instance { return e.stack }

// Held returns the ingredient currently in hand, nil when empty-handed.
func (e *Engine) Held() *domain.Instance { return e.held }

// Customer returns the active customer, nil outside a run.
func (e *Engine) Customer() *customer.Customer { return e.cust }

// Grill returns the thermal station.
func (e *Engine) Grill() *station.Station { return e.grill }

// Board returns the cutting station.
func (e *Engine) Board() *station.Station { return e.board }

// Ready returns the finished item waiting for pickup at a station.
func (e *Engine) Ready(k station.Kind) *domain.Instance { return e.ready[k] }

// Message returns the current transient message, nil when expired.
func (e *Engine) Message() *Message { return e.msg }

// Bonuses returns the live floating score popups.
func (e *Engine) Bonuses() []BonusText { return e.bonuses }

// Shelf returns the unlocked ingredient categories in catalog order.
func (e *Engine) Shelf() []domain.Category {
	var out []domain.Category
	for _, c := range domain.Categories {
		if _, ok := e.catalog[c]; !ok {
			continue
		}
		if e.progress.IsUnlocked(c.String()) {
			out = append(out, c)
		}
	}
	return out
}

// Play starts a run from the menu or the game-over screen. The tutorial
// is shown first on a fresh save.
func (e *Engine) Play() bool {
	if e.state != StateMenu && e.state != StateGameOver {
		return false
	}
	if !e.progress.TutorialCompleted {
		e.state = StateTutorial
		e.tutorialStep = 0
		e.log.Info("run %s: starting tutorial", e.runID)
		return true
	}
	e.startRun()
	return true
}

// OpenShop switches to the shop screen.
func (e *Engine) OpenShop() bool {
	if e.state != StateMenu && e.state != StateGameOver {
		return false
	}
	e.state = StateShop
	e.rebuildShop()
	return true
}

// CloseShop returns from the shop to the menu.
func (e *Engine) CloseShop() bool {
	if e.state != StateShop {
		return false
	}
	e.state = StateMenu
	return true
}

func (e *Engine) startRun() {
	e.state = StatePlaying
	e.score = 0
	e.level = 1
	e.stack = nil
	e.held = nil
	e.ready = make(map[station.Kind]*domain.Instance)
	e.money = e.progress.Money
	e.nextActionAt = time.Time{}
	e.lastUpdate = time.Time{}
	e.tickDebt = 0
	e.grill.SetSpeed(thermalSpeed(e.progress.UpgradeLevel(domain.UpgradeGrillSpeed)))

	e.newCustomer()
	e.showMessageFor("Let's make some burgers!", ToneGood, 3*time.Second)
	e.log.Info("run %s: session started", e.runID)
}

func (e *Engine) newCustomer() {
	o := e.gen.Generate(e.level)
	e.cust = customer.New(o, e.progress.UpgradeLevel(domain.UpgradePatience), e.notifier, e.log)
	e.showMessage(fmt.Sprintf("New customer (level %d)!", e.level), ToneGood)
	e.log.Debug("run %s: customer for level %d, %d items, %s limit",
		e.runID, e.level, len(o.Items), o.TimeLimit)
}

// TakeFromShelf clones an unlocked shelf ingredient into the hand.
func (e *Engine) TakeFromShelf(c domain.Category) bool {
	if e.state != StatePlaying || e.held != nil {
		return false
	}
	if _, ok := e.catalog[c]; !ok || !e.progress.IsUnlocked(c.String()) {
		return false
	}

	e.held = domain.NewInstance(domain.Plain(c), e.catalog, e.rng)
	e.held.Mode = domain.ModeHeld
	e.notifier.Notify(domain.EventClick)
	e.log.Debug("run %s: took %s (quality %.2f)", e.runID, e.held.ID.Name(), e.held.Quality)
	return true
}

// PlaceOnStation drops the held ingredient onto a station. Fails when
// empty-handed, when the station is busy or still holds a finished item,
// or when the ingredient has no capability the station can use.
func (e *Engine) PlaceOnStation(k station.Kind) bool {
	if e.state != StatePlaying || e.held == nil {
		return false
	}
	st := e.stationFor(k)
	if st == nil || e.ready[k] != nil {
		return false
	}
	if !st.Start(e.held) {
		return false
	}
	e.held = nil
	return true
}

// TakeFromStation picks up a finished item, or reclaims one mid-processing.
func (e *Engine) TakeFromStation(k station.Kind) bool {
	if e.state != StatePlaying || e.held != nil {
		return false
	}
	st := e.stationFor(k)
	if st == nil {
		return false
	}

	if out := e.ready[k]; out != nil {
		out.Mode = domain.ModeHeld
		e.held = out
		e.ready[k] = nil
		return true
	}
	if inst := st.Remove(); inst != nil {
		e.held = inst
		return true
	}
	return false
}

// PlaceOnStack adds the held ingredient to the burger. Placing a top bun
// attempts to complete and serve the burger.
func (e *Engine) PlaceOnStack() bool {
	if e.state != StatePlaying || e.held == nil {
		return false
	}

	top := e.held
	top.Mode = domain.ModeIdle
	e.stack = append(e.stack, top)
	e.held = nil
	e.notifier.Notify(domain.EventPlace)

	if top.ID.Category == domain.BunTop {
		e.completeBurger()
	}
	return true
}

// Discard throws away the held ingredient.
func (e *Engine) Discard() bool {
	if e.held == nil {
		return false
	}
	e.log.Debug("run %s: discarded %s", e.runID, e.held.ID.Name())
	e.held = nil
	return true
}

func (e *Engine) stationFor(k station.Kind) *station.Station {
	switch k {
	case station.Thermal:
		return e.grill
	case station.Cutting:
		return e.board
	default:
		return nil
	}
}

// completeBurger attempts to serve the current stack to the customer.
func (e *Engine) completeBurger() {
	if len(e.stack) < minStack {
		e.showMessage("Your burger is too small!", ToneBad)
		e.notifier.Notify(domain.EventWrong)
		return
	}
	if e.cust == nil || e.cust.Served() {
		return
	}

	now := e.clk.Now()
	if !e.cust.Serve(e.stack) {
		e.notifier.Notify(domain.EventWrong)
		e.showMessage("Wrong burger! Try again.", ToneBad)
		e.nextActionAt = now.Add(e.clearDelay)
		return
	}

	e.notifier.Notify(domain.EventSuccess)
	o := e.cust.Order()

	remaining := o.Remaining(now)
	timeBonus := int(remaining.Seconds() * 2)
	total := o.ScoreValue + int(e.cust.Satisfaction()*100) + timeBonus
	e.score += total
	o.Complete()

	tipsLevel := e.progress.UpgradeLevel(domain.UpgradeTips)
	paid := int(float64(e.cust.Tip()) * (1 + 0.2*float64(tipsLevel)))
	e.money += paid
	e.progress.Money = e.money
	e.persist()

	e.bonuses = append(e.bonuses, BonusText{Text: fmt.Sprintf("+%d", total), born: now})
	if paid > 0 {
		e.bonuses = append(e.bonuses, BonusText{Text: fmt.Sprintf("+$%d", paid), born: now})
		e.notifier.Notify(domain.EventCoin)
	}

	verdict := "Acceptable"
	switch {
	case e.cust.Satisfaction() > 0.9:
		verdict = "Perfect"
	case e.cust.Satisfaction() > 0.6:
		verdict = "Good"
	}
	e.showMessage(fmt.Sprintf("%s burger! +%d time bonus!", verdict, timeBonus), ToneGood)

	e.level++
	e.nextActionAt = now.Add(e.customerGap)
	e.log.Info("run %s: served level %d, +%d points, +$%d (satisfaction %.2f)",
		e.runID, e.level-1, total, paid, e.cust.Satisfaction())
}

// Update advances the session by one frame. now comes from the display's
// tick; all station and order timing derives from the injected clock.
func (e *Engine) Update(now time.Time) {
	if e.msg != nil && now.After(e.msg.until) {
		e.msg = nil
	}
	e.pruneBonuses(now)

	if e.state != StatePlaying {
		e.lastUpdate = now
		return
	}

	if out := e.grill.Tick(now); out != nil {
		e.ready[station.Thermal] = out
	}
	if out := e.board.Tick(now); out != nil {
		e.ready[station.Cutting] = out
	}

	if e.customerLeft(now) {
		e.notifier.Notify(domain.EventCustomerAngry)
		e.showMessageFor("Customer left angry!", ToneBad, 3*time.Second)
		e.gameOver("customer walked out")
		return
	}

	if !e.nextActionAt.IsZero() && now.After(e.nextActionAt) {
		e.nextActionAt = time.Time{}
		e.stack = nil
		if e.cust != nil && e.cust.Served() {
			e.notifier.Notify(domain.EventLevelUp)
			e.newCustomer()
		}
	}

	if e.cust != nil && e.cust.Order().Expired(now) && e.nextActionAt.IsZero() {
		e.showMessageFor("Time's up! Game over.", ToneBad, 3*time.Second)
		e.gameOver("order expired")
		return
	}

	if e.score > e.progress.HighScore {
		e.progress.HighScore = e.score
		e.persist()
	}
}

// customerLeft drains elapsed wall-clock time into fixed accumulator
// steps, so the customer's patience runs at the same rate regardless of
// the display's frame rate.
func (e *Engine) customerLeft(now time.Time) bool {
	if e.lastUpdate.IsZero() {
		e.lastUpdate = now
		return false
	}
	e.tickDebt += now.Sub(e.lastUpdate)
	e.lastUpdate = now

	for e.tickDebt >= tickStep {
		e.tickDebt -= tickStep
		if e.cust != nil && e.cust.Tick() {
			return true
		}
	}
	return false
}

func (e *Engine) gameOver(reason string) {
	e.state = StateGameOver
	e.held = nil
	e.nextActionAt = time.Time{}
	if e.score > e.progress.HighScore {
		e.progress.HighScore = e.score
	}
	e.persist()
	e.log.Info("run %s: game over (%s), score %d, high score %d",
		e.runID, reason, e.score, e.progress.HighScore)
}

func (e *Engine) showMessage(text string, tone Tone) {
	e.showMessageFor(text, tone, defaultMessageFor)
}

func (e *Engine) showMessageFor(text string, tone Tone, d time.Duration) {
	e.msg = &Message{Text: text, Tone: tone, until: e.clk.Now().Add(d)}
}

func (e *Engine) pruneBonuses(now time.Time) {
	kept := e.bonuses[:0]
	for _, b := range e.bonuses {
		if now.Sub(b.born) <= bonusLifespan {
			kept = append(kept, b)
		}
	}
	e.bonuses = kept
}

// persist writes progress through the store. Save errors are logged and
// swallowed; the in-memory state stays authoritative for this session.
func (e *Engine) persist() {
	if err := e.store.Save(context.Background(), e.progress); err != nil {
		e.log.Error("saving progress: %v", err)
	}
}
