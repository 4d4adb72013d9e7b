package services_test

import (
	"context"
	"testing"

	"nasum/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStage(ctx, "html")
	ctx = services.WithEpisode(ctx, "1234.5")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "html" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if ep, ok := services.EpisodeFromContext(ctx); !ok || ep != "1234.5" {
		t.Fatalf("unexpected episode: %v %v", ep, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithEpisode(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
	if _, ok := services.EpisodeFromContext(ctx); ok {
		t.Fatal("expected no episode value")
	}
}
