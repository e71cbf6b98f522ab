package api_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/assetdeck/internal/api"
	"github.com/louisbranch/assetdeck/internal/assets"
	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
	"github.com/louisbranch/assetdeck/internal/testkit/gameapi"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "secret"
	testToken    = "token-abc"
)

func newClient(t *testing.T, token string) (*gameapi.Server, *api.Client) {
	t.Helper()
	backend := gameapi.New(testEmail, testPassword, testToken)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return backend, api.New(srv.URL, func() string { return token }, nil)
}

func TestLoginExchangesCredentialsForToken(t *testing.T) {
	_, client := newClient(t, "")

	result, err := client.Login(context.Background(), testEmail, testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != testToken {
		t.Fatalf("unexpected token %q", result.Token)
	}
	if result.Message == "" {
		t.Fatal("expected confirmation message")
	}
}

func TestLoginRejectionIsInvalidCredentials(t *testing.T) {
	_, client := newClient(t, "")

	_, err := client.Login(context.Background(), testEmail, "wrong")
	if apperrors.CodeOf(err) != apperrors.CodeAuthInvalidCredentials {
		t.Fatalf("expected invalid-credentials, got %v", err)
	}
	if apperrors.MessageOf(err) != "invalid credentials" {
		t.Fatalf("expected server message to surface, got %q", apperrors.MessageOf(err))
	}
}

func TestBearerTokenAttachedToProtectedCalls(t *testing.T) {
	backend, client := newClient(t, testToken)
	backend.SeedPet(assets.Pet{Name: "Biscuit", AbilityName: "Dig"})

	summary, err := client.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.PetCount != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestStaleTokenSurfacesSessionExpired(t *testing.T) {
	_, client := newClient(t, "expired-token")

	_, err := client.ListCharacters(context.Background())
	if apperrors.CodeOf(err) != apperrors.CodeAuthSessionExpired {
		t.Fatalf("expected session-expired, got %v", err)
	}
}

func TestCreateCharacterWithImage(t *testing.T) {
	_, client := newClient(t, testToken)

	record := assets.Character{
		Name:        "Zara",
		Gender:      assets.GenderFemale,
		Age:         12,
		AbilityName: "Starlight",
		Birthday:    "2014-12-24",
	}
	file := &api.Upload{Filename: "zara.png", Content: []byte("png-bytes")}

	result, err := client.CreateCharacter(context.Background(), record, file)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Record.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if !strings.HasPrefix(result.Record.Image, "/uploads/") {
		t.Fatalf("expected stored image path, got %q", result.Record.Image)
	}
	if result.Message == "" {
		t.Fatal("expected confirmation message")
	}

	items, err := client.ListCharacters(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Birthday != "2014-12-24" {
		t.Fatalf("unexpected list after create: %+v", items)
	}
}

func TestCreateThenGetByIDRoundTrip(t *testing.T) {
	_, client := newClient(t, testToken)
	ctx := context.Background()

	submitted := assets.Character{
		Name:               "Warrior Zara",
		Subtitle:           "Blade of the North",
		BioDescription:     "A fierce warrior from the northern lands",
		CharacterLine:      "Steel never lies.",
		Birthday:           "1999-03-14",
		AbilityName:        "Sword Master",
		AbilityDescription: "Unmatched blade work",
		Gender:             assets.GenderFemale,
		Age:                25,
		Badge:              "veteran",
	}
	result, err := client.CreateCharacter(ctx, submitted, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Record.ID == "" {
		t.Fatal("expected server-assigned id")
	}

	got, err := client.GetCharacter(ctx, result.Record.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	want := submitted
	want.ID = result.Record.ID
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestGetByMissingIDIsNotFound(t *testing.T) {
	backend, client := newClient(t, testToken)
	seeded := backend.SeedPet(assets.Pet{Name: "Biscuit", AbilityName: "Dig"})
	ctx := context.Background()

	got, err := client.GetPet(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != seeded {
		t.Fatalf("get mismatch: got %+v want %+v", got, seeded)
	}

	if _, err := client.GetVehicle(ctx, "no-such-id"); apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestUpdateWithoutImageKeepsStoredImage(t *testing.T) {
	backend, client := newClient(t, testToken)
	seeded := backend.SeedVehicle(assets.Vehicle{Name: "Dune Hopper", Control: 70, Seats: 2, Image: "/uploads/hopper.png"})

	seeded.Speed = 120
	result, err := client.UpdateVehicle(context.Background(), seeded.ID, seeded, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Record.Image != "/uploads/hopper.png" {
		t.Fatalf("stored image should survive an update without a new file, got %q", result.Record.Image)
	}
	if result.Record.Speed != 120 {
		t.Fatalf("expected updated speed, got %d", result.Record.Speed)
	}
}

func TestDeleteMissingRecordIsNotFound(t *testing.T) {
	_, client := newClient(t, testToken)

	err := client.DeletePet(context.Background(), "no-such-id")
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestUnreachableServerIsNetworkUnavailable(t *testing.T) {
	backend := gameapi.New(testEmail, testPassword, testToken)
	srv := httptest.NewServer(backend.Handler())
	srv.Close()

	client := api.New(srv.URL, func() string { return testToken }, nil)
	_, err := client.ListVehicles(context.Background())
	if apperrors.CodeOf(err) != apperrors.CodeNetworkUnavailable {
		t.Fatalf("expected network-unavailable, got %v", err)
	}
}

func TestImageURLResolution(t *testing.T) {
	client := api.New("https://assets.example.com/", nil, nil)

	tests := []struct {
		ref  string
		want string
	}{
		{"", ""},
		{"/uploads/zara.png", "https://assets.example.com/uploads/zara.png"},
		{"uploads/zara.png", "https://assets.example.com/uploads/zara.png"},
		{"https://cdn.example.com/zara.png", "https://cdn.example.com/zara.png"},
	}
	for _, tt := range tests {
		if got := client.ImageURL(tt.ref); got != tt.want {
			t.Fatalf("ImageURL(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
