// internal/store/store_test.go
package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mwiater/salarydash/internal/salary"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndReadSnapshot(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	rows := []salary.SummaryRow{
		{Country: "Zed", Experience: "No Experience", Measure: "Statutory teaching time", MeanSalaryPerHour: 30, MeasureMean: 30},
		{Country: "Abe", Experience: "No Experience", Measure: "Statutory teaching time", MeanSalaryPerHour: 12.5, MeasureMean: 12.5},
	}

	snap, err := s.SaveSnapshot(ctx, "merged_data.csv", "abc123", rows)
	if err != nil {
		t.Fatalf("SaveSnapshot error: %v", err)
	}
	if snap.ID == "" || snap.RowCount != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	got, err := s.SnapshotRows(ctx, snap.ID)
	if err != nil {
		t.Fatalf("SnapshotRows error: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Fatalf("rows not returned in stored order:\n got  %+v\n want %+v", got, rows)
	}

	list, err := s.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots error: %v", err)
	}
	if len(list) != 1 || list[0].ID != snap.ID || list[0].Checksum != "abc123" || list[0].Source != "merged_data.csv" {
		t.Fatalf("unexpected snapshot list %+v", list)
	}
}

func TestEmptySnapshot(t *testing.T) {
	s := openTemp(t)
	snap, err := s.SaveSnapshot(context.Background(), "empty.csv", "", nil)
	if err != nil {
		t.Fatalf("SaveSnapshot error: %v", err)
	}
	rows, err := s.SnapshotRows(context.Background(), snap.ID)
	if err != nil {
		t.Fatalf("SnapshotRows error: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", rows)
	}
}

func TestSnapshotNotFound(t *testing.T) {
	s := openTemp(t)
	if _, err := s.SnapshotRows(context.Background(), "missing"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}
