package shotlist

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"reel/internal/services"
)

func TestWriteUsesHeaderAndCRLF(t *testing.T) {
	data := render(t, buildDefault(t, 1))
	firstLine, _, ok := bytes.Cut(data, []byte("\r\n"))
	if !ok {
		t.Fatal("expected CRLF line endings")
	}
	if string(firstLine) != strings.Join(Header, ",") {
		t.Fatalf("header = %q", firstLine)
	}
	if got := bytes.Count(data, []byte("\r\n")); got != 251 {
		t.Fatalf("expected 251 lines, got %d", got)
	}
}

func TestReadRoundTrip(t *testing.T) {
	rows := buildDefault(t, 5)
	path := filepath.Join(t.TempDir(), "shotlist.csv")
	if err := WriteFile(path, rows); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Fatal("rows changed across write and read")
	}
}

func TestReadAcceptsReorderedColumnsAndBlankSeed(t *testing.T) {
	values := map[string]string{
		"shot_id":      "S0001",
		"duration_sec": "3.0",
		"output_type":  "video",
	}
	header := make([]string, 0, len(Header))
	record := make([]string, 0, len(Header))
	for i := len(Header) - 1; i >= 0; i-- {
		header = append(header, Header[i])
		record = append(record, values[Header[i]])
	}
	input := strings.Join(header, ",") + "\n" + strings.Join(record, ",") + "\n"

	rows, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.ShotID != "S0001" || !row.IsVideo() || row.DurationSec != 3 {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.Seed != nil {
		t.Fatalf("blank seed parsed as %d", *row.Seed)
	}
}

func TestReadRejectsMalformedInput(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"missing column": "shot_id,episode\nS0001,1\n",
		"bad number":     strings.Join(Header, ",") + "\nS0001,one" + strings.Repeat(",", len(Header)-2) + "\n",
	}
	for name, input := range tests {
		_, err := Read(strings.NewReader(input))
		if !errors.Is(err, services.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "shotlist.csv"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReferencePacks(t *testing.T) {
	row := Row{ReferencePack: "refpacks/C1; refpacks/C2;"}
	if got := row.ReferencePacks(); !reflect.DeepEqual(got, []string{"refpacks/C1", "refpacks/C2"}) {
		t.Fatalf("ReferencePacks = %v", got)
	}
	if got := (Row{}).ReferencePacks(); got == nil || len(got) != 0 {
		t.Fatalf("empty pack = %#v, want empty slice", got)
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(buildDefault(t, 1))
	if sum.Shots != 250 || sum.Video != 5 || sum.Storyboard != 245 || sum.TotalSec != 900 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if len(sum.Scenes) != 6 || sum.Scenes[4].SceneID != "SC05" || sum.Scenes[4].Shots != 60 {
		t.Fatalf("unexpected scenes %+v", sum.Scenes)
	}
	if sum.Scenes[0].Video != 2 || sum.Scenes[5].Video != 2 {
		t.Fatalf("unexpected per-scene video counts %+v", sum.Scenes)
	}
}
