package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/softaudit/softaudit/internal/model"
)

// memorySource is an in-memory Source for testing.
type memorySource struct {
	name    string
	entries []RawEntry
	err     error
}

func (m *memorySource) Name() string { return m.name }

func (m *memorySource) Entries(_ context.Context) ([]RawEntry, error) {
	return m.entries, m.err
}

// TestCollect tests filtering, normalization, and ordering.
func TestCollect(t *testing.T) {
	t.Parallel()

	t.Run("discards entries without a display name", func(t *testing.T) {
		t.Parallel()

		src := &memorySource{name: "test", entries: []RawEntry{
			{Name: "First App", Version: "1.0"},
			{Name: ""},
			{Name: "   "},
			{Name: "Second App"},
		}}

		records, err := New([]Source{src}).Collect(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("got %d records, expected 2", len(records))
		}
		for _, r := range records {
			if r.Name == "" {
				t.Error("record with empty name made it into the output")
			}
		}
	})

	t.Run("preserves enumeration order across sources", func(t *testing.T) {
		t.Parallel()

		first := &memorySource{name: "a", entries: []RawEntry{
			{Name: "Zeta"}, {Name: "Alpha"},
		}}
		second := &memorySource{name: "b", entries: []RawEntry{
			{Name: "Mid"},
		}}

		records, err := New([]Source{first, second}).Collect(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"Zeta", "Alpha", "Mid"}
		if len(records) != len(expected) {
			t.Fatalf("got %d records, expected %d", len(records), len(expected))
		}
		for i, name := range expected {
			if records[i].Name != name {
				t.Errorf("records[%d].Name = %q, expected %q (no sorting allowed)", i, records[i].Name, name)
			}
		}
	})

	t.Run("normalizes absent fields", func(t *testing.T) {
		t.Parallel()

		src := &memorySource{name: "test", entries: []RawEntry{
			{Name: "Bare App"},
			{Name: "Dated App", InstallDate: "20230115"},
			{Name: "Broken Date", InstallDate: "notadate"},
		}}

		records, err := New([]Source{src}).Collect(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if records[0].Version != model.NotAvailable || records[0].Publisher != model.NotAvailable {
			t.Errorf("optional fields not defaulted: %+v", records[0])
		}
		if records[0].InstallDate != model.UnknownDate {
			t.Errorf("InstallDate = %q, expected %q", records[0].InstallDate, model.UnknownDate)
		}
		if records[1].InstallDate != "2023-01-15" {
			t.Errorf("InstallDate = %q, expected %q", records[1].InstallDate, "2023-01-15")
		}
		if records[2].InstallDate != model.InvalidDate {
			t.Errorf("InstallDate = %q, expected %q", records[2].InstallDate, model.InvalidDate)
		}
	})

	t.Run("failing source yields partial results and joined error", func(t *testing.T) {
		t.Parallel()

		broken := &memorySource{name: "broken", err: errors.New("permission denied")}
		working := &memorySource{name: "working", entries: []RawEntry{{Name: "Survivor"}}}

		records, err := New([]Source{broken, working}).Collect(context.Background())
		if err == nil {
			t.Fatal("expected error from broken source")
		}
		if len(records) != 1 || records[0].Name != "Survivor" {
			t.Errorf("expected partial results from working source, got %+v", records)
		}
	})

	t.Run("cancelled context stops collection", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		src := &memorySource{name: "test", entries: []RawEntry{{Name: "App"}}}
		_, err := New([]Source{src}).Collect(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestCollectProgress tests the observational progress callback.
func TestCollectProgress(t *testing.T) {
	t.Parallel()

	src := &memorySource{name: "test", entries: []RawEntry{
		{Name: "One"}, {Name: ""}, {Name: "Three"}, {Name: "Four"},
	}}

	var percents []int
	c := New([]Source{src}, WithProgress(func(source string, percent int) {
		if source != "test" {
			t.Errorf("progress source = %q, expected %q", source, "test")
		}
		percents = append(percents, percent)
	}))

	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every entry counts toward progress, including discarded ones.
	expected := []int{25, 50, 75, 100}
	if len(percents) != len(expected) {
		t.Fatalf("got %d progress calls, expected %d", len(percents), len(expected))
	}
	for i, p := range expected {
		if percents[i] != p {
			t.Errorf("progress[%d] = %d, expected %d", i, percents[i], p)
		}
	}
}
