package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hacktracker/dugout/internal/notify"
	"github.com/hacktracker/dugout/internal/remote"
	"github.com/hacktracker/dugout/internal/types"
	"github.com/hacktracker/dugout/pkg/offline"
)

// fakeAPI is a minimal in-memory server covering the endpoints the tracker
// talks to. Handlers can be swapped per test through the mux.
type fakeAPI struct {
	mux *http.ServeMux
	srv *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{mux: http.NewServeMux()}
	f.srv = httptest.NewServer(f.mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) respond(t *testing.T, pattern string, v any) {
	t.Helper()
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			t.Errorf("encode %s: %v", pattern, err)
		}
	})
}

func (f *fakeAPI) client() *remote.Client {
	return remote.New(f.srv.URL, "test-key")
}

func team(id, name string) types.Team {
	return types.Team{
		ID:   offline.CanonicalID(id),
		Name: name,
		Type: types.TeamManaged,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestTracker_ControllersMemoized(t *testing.T) {
	f := newFakeAPI(t)
	tr := New(f.client(), nil, nil)

	if tr.Teams() != tr.Teams() {
		t.Error("Teams() returned distinct controllers")
	}
	if tr.Roster("t1") != tr.Roster("t1") {
		t.Error("Roster(t1) returned distinct controllers")
	}
	if tr.Roster("t1") == tr.Roster("t2") {
		t.Error("Roster returned the same controller for different teams")
	}
	if tr.Games("t1") == tr.Games("t2") {
		t.Error("Games returned the same controller for different teams")
	}
	if tr.AtBats("g1") != tr.AtBats("g1") {
		t.Error("AtBats(g1) returned distinct controllers")
	}
}

func TestTracker_CreateTeamReplacesPlaceholder(t *testing.T) {
	f := newFakeAPI(t)
	rockets := team("t1", "Rockets")
	thunder := team("t2", "Thunder")
	f.respond(t, "GET /api/v1/teams", []types.Team{rockets})

	release := make(chan struct{})
	f.mux.HandleFunc("POST /api/v1/teams", func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(thunder)
	})

	cache := offline.NewMemoryCache()
	sink := &notify.Memory{}
	tr := New(f.client(), cache, sink)

	if _, err := tr.Teams().Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	var created types.Team
	var ok bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		created, ok = tr.CreateTeam(context.Background(), types.NewTeam{Name: "Thunder"})
	}()

	// The optimistic placeholder must be visible while the request is
	// in flight.
	waitFor(t, func() bool {
		for _, it := range tr.Teams().State().Items {
			if it.Name == "Thunder" && it.ID.IsSynthetic() {
				return true
			}
		}
		return false
	})

	close(release)
	<-done

	if !ok {
		t.Fatal("CreateTeam reported failure")
	}
	if created.ID != thunder.ID {
		t.Errorf("created id = %v, want %v", created.ID, thunder.ID)
	}

	st := tr.Teams().State()
	if len(st.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(st.Items))
	}
	for _, it := range st.Items {
		if it.ID.IsSynthetic() {
			t.Errorf("synthetic id survived reconciliation: %+v", it)
		}
	}
	if st.Items[0].Name != "Rockets" || st.Items[1].Name != "Thunder" {
		t.Errorf("names = %q, %q, want Rockets, Thunder", st.Items[0].Name, st.Items[1].Name)
	}

	var persisted []types.Team
	if !cache.Load(teamsKey, &persisted) {
		t.Fatal("settled state was not persisted")
	}
	if len(persisted) != 2 || persisted[1].ID != thunder.ID {
		t.Errorf("persisted = %+v, want canonical Thunder second", persisted)
	}
	if s, _ := sink.Counts(); s != 1 {
		t.Errorf("success notifications = %d, want 1", s)
	}
}

func TestTracker_CreateTeamFailureRollsBack(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(t, "GET /api/v1/teams", []types.Team{team("t1", "Rockets")})
	f.mux.HandleFunc("POST /api/v1/teams", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"invalid team"}`, http.StatusUnprocessableEntity)
	})

	sink := &notify.Memory{}
	tr := New(f.client(), offline.NewMemoryCache(), sink)
	if _, err := tr.Teams().Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if _, ok := tr.CreateTeam(context.Background(), types.NewTeam{Name: "??"}); ok {
		t.Fatal("CreateTeam reported success on server rejection")
	}

	st := tr.Teams().State()
	if len(st.Items) != 1 || st.Items[0].Name != "Rockets" {
		t.Errorf("items after rollback = %+v, want just Rockets", st.Items)
	}
	if st.Status != offline.StatusReady {
		t.Errorf("status = %v, want ready", st.Status)
	}
	if _, fails := sink.Counts(); fails != 1 {
		t.Errorf("failure notifications = %d, want 1", fails)
	}
}

func TestTracker_DeleteTeamClearsDependentCaches(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(t, "GET /api/v1/teams", []types.Team{team("t1", "Rockets")})
	f.mux.HandleFunc("DELETE /api/v1/teams/t1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cache := offline.NewMemoryCache()
	cache.Store(rosterPrefix+"t1", []types.Player{{ID: offline.CanonicalID("p1"), FirstName: "Ana"}})
	cache.Store(gamesPrefix+"t1", []types.Game{{ID: offline.CanonicalID("g1"), Title: "Opener"}})

	tr := New(f.client(), cache, nil)
	if _, err := tr.Teams().Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if ok := tr.DeleteTeam(context.Background(), "t1"); !ok {
		t.Fatal("DeleteTeam reported failure")
	}

	if len(tr.Teams().State().Items) != 0 {
		t.Error("team still present after delete")
	}
	var players []types.Player
	if cache.Load(rosterPrefix+"t1", &players) {
		t.Error("roster cache survived team deletion")
	}
	var games []types.Game
	if cache.Load(gamesPrefix+"t1", &games) {
		t.Error("games cache survived team deletion")
	}
}

func TestTracker_RecordAtBatFailureRollsBack(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(t, "GET /api/v1/games/g1/at-bats", []types.AtBat{})
	f.mux.HandleFunc("POST /api/v1/games/g1/at-bats", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"game is not in progress"}`, http.StatusConflict)
	})

	tr := New(f.client(), nil, nil)
	if _, err := tr.AtBats("g1").Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	req := types.NewAtBat{PlayerID: "p1", Result: types.ResultSingle, Inning: 1, BattingOrder: 1}
	if _, ok := tr.RecordAtBat(context.Background(), "g1", req); ok {
		t.Fatal("RecordAtBat reported success on server rejection")
	}
	if n := len(tr.AtBats("g1").State().Items); n != 0 {
		t.Errorf("at-bats after rollback = %d, want 0", n)
	}
}

func TestTracker_UpdatePlayerRestoresPriorOnFailure(t *testing.T) {
	f := newFakeAPI(t)
	num := 7
	ana := types.Player{ID: offline.CanonicalID("p1"), TeamID: "t1", FirstName: "Ana", Number: &num}
	f.respond(t, "GET /api/v1/teams/t1/players", []types.Player{ana})
	f.mux.HandleFunc("PATCH /api/v1/teams/t1/players/p1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"number taken"}`, http.StatusUnprocessableEntity)
	})

	tr := New(f.client(), nil, nil)
	if _, err := tr.Roster("t1").Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	taken := 12
	if _, ok := tr.UpdatePlayer(context.Background(), "t1", "p1", types.PlayerPatch{Number: &taken}); ok {
		t.Fatal("UpdatePlayer reported success on server rejection")
	}

	items := tr.Roster("t1").State().Items
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Number == nil || *items[0].Number != 7 {
		t.Errorf("number after rollback = %v, want 7", items[0].Number)
	}
}

func TestTracker_RefreshAllRefreshesBuiltControllers(t *testing.T) {
	f := newFakeAPI(t)
	var mu sync.Mutex
	teams := []types.Team{team("t1", "Rockets")}
	f.mux.HandleFunc("GET /api/v1/teams", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(teams)
	})

	tr := New(f.client(), nil, nil)
	if _, err := tr.Teams().Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	mu.Lock()
	teams = append(teams, team("t2", "Thunder"))
	mu.Unlock()

	tr.refreshAll(context.Background())

	if n := len(tr.Teams().State().Items); n != 2 {
		t.Errorf("teams after refresh = %d, want 2", n)
	}
}
