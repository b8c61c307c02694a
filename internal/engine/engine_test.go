package engine

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/bunbaker/bunbakery/internal/clock"
	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
	"github.com/bunbaker/bunbakery/internal/station"
	"github.com/bunbaker/bunbakery/internal/storage"
)

type recorder struct {
	events []domain.Event
}

func (r *recorder) Notify(e domain.Event) { r.events = append(r.events, e) }

func (r *recorder) has(e domain.Event) bool {
	for _, got := range r.events {
		if got == e {
			return true
		}
	}
	return false
}

func newTestEngine(t *testing.T, p *domain.Progress) (*Engine, *clock.Manual, *storage.MemoryStore, *recorder) {
	t.Helper()

	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	if p != nil {
		if err := store.Save(context.Background(), p); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}

	clk := clock.NewManual(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	rec := &recorder{}
	rng := rand.New(rand.NewSource(7))

	e, err := New(context.Background(), domain.DefaultCatalog(), store, rec, clk, rng, log)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e, clk, store, rec
}

func veteranProgress() *domain.Progress {
	p := domain.DefaultProgress()
	p.TutorialCompleted = true
	return p
}

func instanceOf(t *testing.T, name string) *domain.Instance {
	t.Helper()
	id, err := domain.ParseName(name)
	if err != nil {
		t.Fatalf("parse %q: %v", name, err)
	}
	return &domain.Instance{ID: id, Quality: 1.0}
}

// orderStack builds a perfect stack for the customer's current order.
func orderStack(o *domain.Order) []*domain.Instance {
	out := make([]*domain.Instance, len(o.Items))
	for i, id := range o.Items {
		out[i] = &domain.Instance{ID: id, Quality: 1.0}
	}
	return out
}

func TestPlayRunsTutorialOnFreshSave(t *testing.T) {
	e, _, store, _ := newTestEngine(t, nil)

	if !e.Play() {
		t.Fatal("play from menu must succeed")
	}
	if e.State() != StateTutorial {
		t.Fatalf("state = %s, want tutorial", e.State())
	}

	_, _, total := e.Tutorial()
	for i := 0; i < total; i++ {
		if !e.AdvanceTutorial() {
			t.Fatalf("advance step %d failed", i)
		}
	}
	if e.State() != StatePlaying {
		t.Fatalf("state after tutorial = %s, want playing", e.State())
	}

	saved, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !saved.TutorialCompleted {
		t.Fatal("tutorial completion must be persisted")
	}
}

func TestPlaySkipsCompletedTutorial(t *testing.T) {
	e, _, _, _ := newTestEngine(t, veteranProgress())

	e.Play()
	if e.State() != StatePlaying {
		t.Fatalf("state = %s, want playing", e.State())
	}
	if e.Customer() == nil {
		t.Fatal("a run must start with a customer")
	}
	if e.Score() != 0 || e.Level() != 1 {
		t.Fatalf("fresh run must start at score 0, level 1; got %d/%d", e.Score(), e.Level())
	}
}

func TestShelfListsOnlyUnlocked(t *testing.T) {
	e, _, _, _ := newTestEngine(t, veteranProgress())
	e.Play()

	shelf := e.Shelf()
	if len(shelf) != 5 {
		t.Fatalf("expected 5 starter ingredients, got %d", len(shelf))
	}
	if !e.TakeFromShelf(domain.Patty) {
		t.Fatal("taking an unlocked ingredient must succeed")
	}
	e.Discard()
	if e.TakeFromShelf(domain.Bacon) {
		t.Fatal("taking a locked ingredient must fail")
	}
}

func TestStationFlow(t *testing.T) {
	e, clk, _, _ := newTestEngine(t, veteranProgress())
	e.Play()

	if !e.TakeFromShelf(domain.Patty) {
		t.Fatal("take patty")
	}
	if !e.PlaceOnStation(station.Thermal) {
		t.Fatal("place on grill")
	}
	if e.Held() != nil {
		t.Fatal("hand must be empty after placing")
	}
	if e.PlaceOnStation(station.Thermal) {
		t.Fatal("placing empty-handed must fail")
	}

	clk.Advance(5 * time.Second)
	e.Update(clk.Now())

	out := e.Ready(station.Thermal)
	if out == nil {
		t.Fatal("grill must release the patty after the cook time")
	}
	if out.ID.Name() != "patty" {
		t.Fatalf("cooked result = %s, want patty", out.ID.Name())
	}
	if !e.TakeFromStation(station.Thermal) {
		t.Fatal("take from grill")
	}
	if e.Ready(station.Thermal) != nil {
		t.Fatal("pickup must clear the output slot")
	}
	if !e.PlaceOnStack() {
		t.Fatal("place on stack")
	}
	if len(e.Stack()) != 1 {
		t.Fatalf("stack length = %d, want 1", len(e.Stack()))
	}
}

func TestTooSmallBurgerIsNotServed(t *testing.T) {
	e, _, _, rec := newTestEngine(t, veteranProgress())
	e.Play()

	e.stack = []*domain.Instance{instanceOf(t, "bun_bottom")}
	e.held = instanceOf(t, "bun_top")
	e.PlaceOnStack()

	if e.Customer().Served() {
		t.Fatal("a two-item stack must never reach the customer")
	}
	if !rec.has(domain.EventWrong) {
		t.Fatal("expected the wrong-burger event")
	}
	if e.Message() == nil || e.Message().Tone != ToneBad {
		t.Fatal("expected a rejection message")
	}
	if !e.nextActionAt.IsZero() {
		t.Fatal("a too-small burger must not schedule a stack clear")
	}
}

func TestServeSuccessScoringAndLevelUp(t *testing.T) {
	e, clk, store, rec := newTestEngine(t, veteranProgress())
	e.Play()

	o := e.Customer().Order()
	e.stack = orderStack(o)
	e.completeBurger()

	if !e.Customer().Served() {
		t.Fatal("a perfect burger must be accepted")
	}

	// Instant perfect service: satisfaction 1.0, full time remaining.
	timeBonus := int(o.TimeLimit.Seconds() * 2)
	wantScore := o.ScoreValue + 100 + timeBonus
	if e.Score() != wantScore {
		t.Fatalf("score = %d, want %d", e.Score(), wantScore)
	}

	// Tip 20 at tips level 1: paid out at 1.2x.
	if e.Money() != 24 {
		t.Fatalf("money = %d, want 24", e.Money())
	}
	if !rec.has(domain.EventSuccess) || !rec.has(domain.EventCoin) {
		t.Fatal("expected success and coin events")
	}
	if len(e.Bonuses()) != 2 {
		t.Fatalf("expected score and tip popups, got %d", len(e.Bonuses()))
	}
	if !o.Completed {
		t.Fatal("a served order must be marked completed")
	}

	// The high score persists on the next frame.
	e.Update(clk.Now())
	saved, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved.HighScore != wantScore {
		t.Fatalf("persisted high score = %d, want %d", saved.HighScore, wantScore)
	}
	if saved.Money != 24 {
		t.Fatalf("persisted money = %d, want 24", saved.Money)
	}

	// After the gap a new customer arrives and the level rises.
	clk.Advance(2100 * time.Millisecond)
	e.Update(clk.Now())

	if e.Level() != 2 {
		t.Fatalf("level = %d, want 2", e.Level())
	}
	if e.Customer().Served() {
		t.Fatal("the next customer must be fresh")
	}
	if len(e.Stack()) != 0 {
		t.Fatal("the stack must be cleared for the next order")
	}
	if !rec.has(domain.EventLevelUp) {
		t.Fatal("expected the level-up event")
	}
}

func TestServeRejectionClearsStackAfterDelay(t *testing.T) {
	e, clk, _, rec := newTestEngine(t, veteranProgress())
	e.Play()

	e.stack = []*domain.Instance{
		instanceOf(t, "lettuce"),
		instanceOf(t, "lettuce"),
		instanceOf(t, "lettuce"),
	}
	e.completeBurger()

	if e.Customer().Served() {
		t.Fatal("a wrong burger must be refused")
	}
	if !rec.has(domain.EventWrong) {
		t.Fatal("expected the wrong-burger event")
	}

	// Before the clear delay the stack survives.
	clk.Advance(time.Second)
	e.Update(clk.Now())
	if len(e.Stack()) != 3 {
		t.Fatal("stack must survive until the clear delay passes")
	}

	clk.Advance(600 * time.Millisecond)
	e.Update(clk.Now())
	if len(e.Stack()) != 0 {
		t.Fatal("stack must clear after the delay")
	}
	if e.Level() != 1 {
		t.Fatal("a rejection must not advance the level")
	}
	if e.Customer().Served() {
		t.Fatal("the same customer keeps waiting")
	}
}

func TestOrderExpiryEndsTheRun(t *testing.T) {
	e, clk, _, _ := newTestEngine(t, veteranProgress())
	e.Play()
	e.Update(clk.Now())

	limit := e.Customer().Order().TimeLimit
	clk.Advance(limit + time.Second)
	e.Update(clk.Now())

	if e.State() != StateGameOver {
		t.Fatalf("state = %s, want game_over", e.State())
	}
}

func TestCustomerDepartureEndsTheRun(t *testing.T) {
	e, clk, _, rec := newTestEngine(t, veteranProgress())
	e.Play()
	e.Update(clk.Now())

	// Stretch the order deadline so patience, not expiry, ends the run.
	e.Customer().Order().TimeLimit = 10 * time.Minute

	clk.Advance(80 * time.Second)
	e.Update(clk.Now())

	if e.State() != StateGameOver {
		t.Fatalf("state = %s, want game_over", e.State())
	}
	if !rec.has(domain.EventCustomerAngry) {
		t.Fatal("expected the angry-customer event")
	}
}

func TestPurchaseBoundary(t *testing.T) {
	e, _, store, rec := newTestEngine(t, veteranProgress())

	if !e.OpenShop() {
		t.Fatal("open shop from menu")
	}

	items := e.ShopItems()
	if len(items) != 6 {
		t.Fatalf("expected 3 locked ingredients + 3 upgrades, got %d", len(items))
	}
	price := items[0].Price
	if items[0].Name != "Tomato" || price != 70 {
		t.Fatalf("first entry = %s/$%d, want Tomato/$70", items[0].Name, price)
	}

	// One short: nothing moves.
	e.progress.Money = price - 1
	if e.Purchase(0) {
		t.Fatal("purchase must fail when short by one")
	}
	if e.progress.Money != price-1 || e.progress.IsUnlocked("tomato") {
		t.Fatal("a failed purchase must mutate nothing")
	}

	// Exact money: success.
	e.progress.Money = price
	if !e.Purchase(0) {
		t.Fatal("purchase must succeed at exact price")
	}
	if e.Money() != 0 {
		t.Fatalf("money = %d, want 0", e.Money())
	}
	if !e.progress.IsUnlocked("tomato") {
		t.Fatal("tomato must be unlocked")
	}
	if !rec.has(domain.EventPurchase) {
		t.Fatal("expected the purchase event")
	}

	// The shop rebuilt without the bought entry and persisted the sale.
	if len(e.ShopItems()) != 5 {
		t.Fatalf("expected 5 entries after unlock, got %d", len(e.ShopItems()))
	}
	saved, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !saved.IsUnlocked("tomato") || saved.Money != 0 {
		t.Fatal("purchase must persist immediately")
	}
}

func TestUpgradePurchaseBumpsLevel(t *testing.T) {
	e, _, _, _ := newTestEngine(t, veteranProgress())
	e.OpenShop()

	// Upgrades sit after the locked ingredients.
	items := e.ShopItems()
	idx := -1
	for i, it := range items {
		if it.Kind == ItemUpgrade && it.Name == "Better Tips (Lvl 2)" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("tips upgrade not found in %v", items)
	}
	if items[idx].Price != 100 {
		t.Fatalf("level 2 upgrade price = %d, want 100", items[idx].Price)
	}

	e.progress.Money = 250
	if !e.Purchase(idx) {
		t.Fatal("upgrade purchase must succeed")
	}
	if e.progress.UpgradeLevel(domain.UpgradeTips) != 2 {
		t.Fatal("tips level must rise to 2")
	}

	// Next level costs more.
	for _, it := range e.ShopItems() {
		if it.Kind == ItemUpgrade && it.Name == "Better Tips (Lvl 3)" {
			if it.Price != 150 {
				t.Fatalf("level 3 price = %d, want 150", it.Price)
			}
			return
		}
	}
	t.Fatal("rebuilt shop must offer the next tips level")
}

func TestMessageExpires(t *testing.T) {
	e, clk, _, _ := newTestEngine(t, veteranProgress())
	e.Play()

	if e.Message() == nil {
		t.Fatal("starting a run must show a message")
	}
	clk.Advance(4 * time.Second)
	e.Update(clk.Now())
	if e.Message() != nil {
		t.Fatal("messages must expire")
	}
}
