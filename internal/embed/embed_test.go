package embed

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/furrowhq/furrow/internal/testutil"
)

func TestAdapter_Embed(t *testing.T) {
	g := testutil.NewTestGenkit(t)
	mock := testutil.NewMockEmbedder(8)
	embedder := mock.RegisterEmbedder(g)
	adapter := NewAdapter(embedder, slog.New(slog.DiscardHandler))

	vec, err := adapter.Embed(context.Background(), "profit of kale")
	if err != nil {
		t.Fatalf("Embed() error: %v", err)
	}
	if len(vec) != 8 {
		t.Errorf("Embed() returned %d dimensions, want 8", len(vec))
	}
}

func TestAdapter_Embed_Deterministic(t *testing.T) {
	g := testutil.NewTestGenkit(t)
	mock := testutil.NewMockEmbedder(8)
	adapter := NewAdapter(mock.RegisterEmbedder(g), slog.New(slog.DiscardHandler))

	first, err := adapter.Embed(context.Background(), "same text")
	if err != nil {
		t.Fatalf("Embed() error: %v", err)
	}
	second, err := adapter.Embed(context.Background(), "same text")
	if err != nil {
		t.Fatalf("Embed() error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Embed() not deterministic at dimension %d: %v != %v", i, first[i], second[i])
		}
	}
}

func TestAdapter_Embed_EmptyInput(t *testing.T) {
	g := testutil.NewTestGenkit(t)
	mock := testutil.NewMockEmbedder(8)
	adapter := NewAdapter(mock.RegisterEmbedder(g), slog.New(slog.DiscardHandler))

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := adapter.Embed(context.Background(), input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Embed(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestAdapter_Embed_ProviderFailure(t *testing.T) {
	g := testutil.NewTestGenkit(t)
	mock := testutil.NewMockEmbedder(8)
	adapter := NewAdapter(mock.RegisterEmbedder(g), slog.New(slog.DiscardHandler))

	providerErr := errors.New("quota exceeded")
	mock.FailWith(providerErr)

	_, err := adapter.Embed(context.Background(), "any question")
	if err == nil {
		t.Fatal("Embed() expected error, got nil")
	}
	if !errors.Is(err, providerErr) {
		t.Errorf("Embed() error = %v, want wrapped %v", err, providerErr)
	}
}

func TestAdapter_Embed_EmptyProviderResponse(t *testing.T) {
	g := testutil.NewTestGenkit(t)
	empty := genkit.DefineEmbedder(g, "mock/empty-embedder", &ai.EmbedderOptions{},
		func(context.Context, *ai.EmbedRequest) (*ai.EmbedResponse, error) {
			return &ai.EmbedResponse{}, nil
		})
	adapter := NewAdapter(empty, slog.New(slog.DiscardHandler))

	if _, err := adapter.Embed(context.Background(), "question"); err == nil {
		t.Fatal("Embed() expected error for empty provider response, got nil")
	}
}
