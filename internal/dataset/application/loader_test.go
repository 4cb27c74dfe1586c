package application

import (
	"errors"
	"testing"

	dataset "market-dashboard/internal/dataset/domain"
)

func testRawTable(t *testing.T) *dataset.RawTable {
	t.Helper()
	table, err := dataset.NewRawTable(
		[]string{"AGENTE", "EMPRESA", "Energía MWh 012023"},
		[][]string{{"X", "EMPRESA_A", "100"}})
	if err != nil {
		t.Fatalf("new raw table: %v", err)
	}
	return table
}

func TestCachedLoaderLoadsOncePerPath(t *testing.T) {
	calls := make(map[string]int)
	table := testRawTable(t)
	loader, err := NewCachedLoader(func(path string) (*dataset.RawTable, error) {
		calls[path]++
		return table, nil
	})
	if err != nil {
		t.Fatalf("new cached loader: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := loader.Load("a.xlsx")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got != table {
			t.Fatalf("load returned a different table")
		}
	}
	if _, err := loader.Load("b.xlsx"); err != nil {
		t.Fatalf("load: %v", err)
	}

	if calls["a.xlsx"] != 1 {
		t.Fatalf("a.xlsx loaded %d times, want 1", calls["a.xlsx"])
	}
	if calls["b.xlsx"] != 1 {
		t.Fatalf("b.xlsx loaded %d times, want 1", calls["b.xlsx"])
	}
}

func TestCachedLoaderDoesNotCacheFailures(t *testing.T) {
	calls := 0
	table := testRawTable(t)
	loader, err := NewCachedLoader(func(path string) (*dataset.RawTable, error) {
		calls++
		if calls == 1 {
			return nil, dataset.ErrFileNotFound
		}
		return table, nil
	})
	if err != nil {
		t.Fatalf("new cached loader: %v", err)
	}

	if _, err := loader.Load("a.xlsx"); !errors.Is(err, dataset.ErrFileNotFound) {
		t.Fatalf("got %v, want ErrFileNotFound", err)
	}
	if _, err := loader.Load("a.xlsx"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if calls != 2 {
		t.Fatalf("load func called %d times, want 2", calls)
	}
}

func TestNewCachedLoaderRequiresLoadFunc(t *testing.T) {
	if _, err := NewCachedLoader(nil); err == nil {
		t.Fatalf("expected error for nil load func")
	}
}
