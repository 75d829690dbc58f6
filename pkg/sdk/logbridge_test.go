package reelmatch

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestEngineLogger_ForwardsToSlog(t *testing.T) {
	var buf bytes.Buffer
	l := engineLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	l.With(zap.String("table", "items")).Warn("rows skipped", zap.Int("skipped", 2))
	l.Debug("hidden")

	out := buf.String()
	for _, want := range []string{"level=WARN", `msg="rows skipped"`, "table=items", "skipped=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry must respect the handler level")
	}
}

func TestEngineLogger_NilDiscards(t *testing.T) {
	if engineLogger(nil).Core().Enabled(zap.ErrorLevel) {
		t.Error("nil slog logger must yield a disabled core")
	}
}

func TestClient_ReportsLoadProblems(t *testing.T) {
	dir := t.TempDir()
	items := filepath.Join(dir, "movies.csv")
	data := itemsCSV + " ,Blank Id,Drama,,,,1999\n"
	if err := os.WriteFile(items, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	c, err := New(context.Background(),
		WithItemsCSV(items),
		WithImagesCSV(filepath.Join(dir, "absent.csv")),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	info, err := c.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if info.Items != 3 || info.ItemsSkipped != 1 || !info.ImagesUnavailable {
		t.Errorf("info = %+v", info)
	}

	out := buf.String()
	for _, want := range []string{"Catalog loaded with skipped rows", "Image table unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}
