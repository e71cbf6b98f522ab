package controller

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/assetdeck/internal/api"
	"github.com/louisbranch/assetdeck/internal/assets"
	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
	"github.com/louisbranch/assetdeck/internal/testkit/gameapi"
)

const testToken = "token-abc"

func newBackend(t *testing.T) (*gameapi.Server, *api.Client) {
	t.Helper()
	backend := gameapi.New("admin@example.com", "secret", testToken)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, func() string { return testToken }, nil)
	return backend, client
}

func validCharacterForm(c *Controller[assets.Character], name string) {
	c.OpenCreateForm()
	_ = c.SetValue("name", name)
	_ = c.SetValue("gender", "Female")
	_ = c.SetValue("age", "12")
	_ = c.SetValue("ability_name", "Starlight")
}

func TestLoadAndSearch(t *testing.T) {
	backend, client := newBackend(t)
	backend.SeedCharacter(assets.Character{Name: "Zara", Gender: assets.GenderFemale, Age: 12, AbilityName: "Starlight"})
	backend.SeedCharacter(assets.Character{Name: "Milo", Gender: assets.GenderMale, Age: 9, AbilityName: "Echo"})

	ctrl := Characters(client)
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(ctrl.Items()); got != 2 {
		t.Fatalf("expected 2 items, got %d", got)
	}

	matched := ctrl.Search("zara")
	if len(matched) != 1 || matched[0].Name != "Zara" {
		t.Fatalf("case-insensitive search failed: %+v", matched)
	}
	if got := len(ctrl.Search("")); got != 2 {
		t.Fatalf("empty query should return full snapshot, got %d", got)
	}
	if got := len(ctrl.Search("dragon")); got != 0 {
		t.Fatalf("expected no matches, got %d", got)
	}
}

func TestCreateRefetchesSnapshot(t *testing.T) {
	_, client := newBackend(t)
	ctrl := Characters(client)
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	validCharacterForm(ctrl, "Zara")
	if err := ctrl.Submit(context.Background(), nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if ctrl.Phase() != PhaseLoaded {
		t.Fatalf("expected loaded phase, got %s", ctrl.Phase())
	}
	items := ctrl.Items()
	if len(items) != 1 {
		t.Fatalf("expected re-fetched snapshot with 1 item, got %d", len(items))
	}
	if items[0].ID == "" {
		t.Fatal("expected server-assigned id in re-fetched snapshot")
	}
	if ctrl.Notice() == "" {
		t.Fatal("expected server confirmation message")
	}
	if _, open := ctrl.FormSnapshot(); open {
		t.Fatal("form should close after a successful submit")
	}
}

func TestValidationNeverReachesNetwork(t *testing.T) {
	backend, client := newBackend(t)
	ctrl := Characters(client)
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := backend.Requests()

	ctrl.OpenCreateForm()
	_ = ctrl.SetValue("gender", "Female")
	_ = ctrl.SetValue("age", "12")
	err := ctrl.Submit(context.Background(), nil)
	if apperrors.CodeOf(err) != apperrors.CodeValidationRequiredField {
		t.Fatalf("expected required-field error, got %v", err)
	}
	if backend.Requests() != before {
		t.Fatal("validation failure must not reach the network")
	}

	form, open := ctrl.FormSnapshot()
	if !open {
		t.Fatal("form should stay open after a validation failure")
	}
	if form.Values["gender"] != "Female" {
		t.Fatal("form values should be preserved for correction")
	}
}

func TestDeleteTwiceSurfacesNotFound(t *testing.T) {
	backend, client := newBackend(t)
	seeded := backend.SeedCharacter(assets.Character{Name: "Zara", Gender: assets.GenderFemale, Age: 12, AbilityName: "Starlight"})

	ctrl := Characters(client)
	ctx := context.Background()
	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	confirm := func() bool { return true }
	if err := ctrl.ConfirmDelete(ctx, seeded.ID, confirm); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if got := len(ctrl.Items()); got != 0 {
		t.Fatalf("expected empty snapshot after delete, got %d items", got)
	}

	err := ctrl.ConfirmDelete(ctx, seeded.ID, confirm)
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("expected not-found on second delete, got %v", err)
	}
	if ctrl.Phase() != PhaseLoaded {
		t.Fatalf("expected controller to settle back to loaded, got %s", ctrl.Phase())
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	backend, client := newBackend(t)
	seeded := backend.SeedCharacter(assets.Character{Name: "Zara", Gender: assets.GenderFemale, Age: 12, AbilityName: "Starlight"})

	ctrl := Characters(client)
	ctx := context.Background()
	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := backend.Requests()

	err := ctrl.ConfirmDelete(ctx, seeded.ID, func() bool { return false })
	if apperrors.CodeOf(err) != apperrors.CodeDeleteNotConfirmed {
		t.Fatalf("expected delete-not-confirmed, got %v", err)
	}
	if backend.Requests() != before {
		t.Fatal("declined confirmation must not reach the network")
	}
	if got := len(ctrl.Items()); got != 1 {
		t.Fatalf("snapshot should be untouched, got %d items", got)
	}
}

func TestUpdateStaleIDSurfacesNotFound(t *testing.T) {
	backend, client := newBackend(t)
	backend.SeedCharacter(assets.Character{Name: "Milo", Gender: assets.GenderMale, Age: 9, AbilityName: "Echo"})

	ctrl := Characters(client)
	ctx := context.Background()
	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := len(ctrl.Items())

	stale := assets.Character{
		ID:          "gone",
		Name:        "Zara",
		Gender:      assets.GenderFemale,
		Age:         12,
		AbilityName: "Starlight",
	}
	ctrl.OpenEditForm(stale)
	err := ctrl.Submit(ctx, nil)
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("expected not-found for stale id, got %v", err)
	}
	if _, open := ctrl.FormSnapshot(); !open {
		t.Fatal("form should stay open after a failed submit")
	}
	if ctrl.Phase() != PhaseLoaded {
		t.Fatalf("expected phase to settle back to loaded, got %s", ctrl.Phase())
	}
	if got := len(ctrl.Items()); got != before {
		t.Fatalf("list length changed after failed update: got %d, want %d", got, before)
	}
}

func TestInitialLoadFailureSettlesEmpty(t *testing.T) {
	backend := gameapi.New("admin@example.com", "secret", testToken)
	srv := httptest.NewServer(backend.Handler())
	srv.Close()

	ctrl := Characters(api.New(srv.URL, func() string { return testToken }, nil))
	err := ctrl.Load(context.Background())
	if apperrors.CodeOf(err) != apperrors.CodeNetworkUnavailable {
		t.Fatalf("expected network-unavailable, got %v", err)
	}
	if ctrl.Phase() != PhaseLoadError {
		t.Fatalf("expected load-error phase, got %s", ctrl.Phase())
	}
	if got := len(ctrl.Items()); got != 0 {
		t.Fatalf("expected empty snapshot after failed load, got %d", got)
	}
	if ctrl.LastError() == "" {
		t.Fatal("expected a surfaced error message")
	}
}

func TestEditFormNormalizesLegacyBirthday(t *testing.T) {
	_, client := newBackend(t)
	ctrl := Characters(client)

	ctrl.OpenEditForm(assets.Character{
		ID:          "c1",
		Name:        "Zara",
		Gender:      assets.GenderFemale,
		Age:         12,
		AbilityName: "Starlight",
		Birthday:    "24/12/2014",
		Image:       "/uploads/zara.png",
	})

	form, open := ctrl.FormSnapshot()
	if !open {
		t.Fatal("expected open form")
	}
	if form.Values["birthday"] != "2014-12-24" {
		t.Fatalf("legacy birthday not normalized: %q", form.Values["birthday"])
	}
	if form.ImagePreview != "/uploads/zara.png" {
		t.Fatalf("expected stored image as preview, got %q", form.ImagePreview)
	}
}

func TestVehicleControlRangeBlocksSubmit(t *testing.T) {
	backend, client := newBackend(t)
	ctrl := Vehicles(client)
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := backend.Requests()

	ctrl.OpenCreateForm()
	_ = ctrl.SetValue("name", "Dune Hopper")
	_ = ctrl.SetValue("control", "140")
	_ = ctrl.SetValue("seats", "2")
	err := ctrl.Submit(context.Background(), nil)
	if apperrors.CodeOf(err) != apperrors.CodeValidationInvalidRange {
		t.Fatalf("expected invalid-range error, got %v", err)
	}
	if backend.Requests() != before {
		t.Fatal("range validation must not reach the network")
	}
}

func TestSubmitWithoutFormIsRejected(t *testing.T) {
	_, client := newBackend(t)
	ctrl := Pets(client)
	if err := ctrl.SetValue("name", "Biscuit"); apperrors.CodeOf(err) != apperrors.CodeFormNotOpen {
		t.Fatalf("expected form-not-open, got %v", err)
	}
	if err := ctrl.Submit(context.Background(), nil); apperrors.CodeOf(err) != apperrors.CodeFormNotOpen {
		t.Fatalf("expected form-not-open, got %v", err)
	}
}
