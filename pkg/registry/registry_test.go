package registry

import (
	"testing"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
)

// TestItem is a simple type for testing
type TestItem struct {
	ID    int
	Value string
}

func TestNew(t *testing.T) {
	reg := New[TestItem]()

	if reg == nil {
		t.Fatal("New() returned nil")
	}

	if reg.Count() != 0 {
		t.Errorf("New registry should be empty, got count %d", reg.Count())
	}
}

func TestRegister(t *testing.T) {
	reg := New[TestItem]()

	t.Run("register valid item", func(t *testing.T) {
		err := reg.Register("js", TestItem{ID: 1, Value: "value1"})

		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}

		if reg.Count() != 1 {
			t.Errorf("Count() = %d, want 1", reg.Count())
		}
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := reg.Register("", TestItem{ID: 2})

		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register() with empty name should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("register duplicate", func(t *testing.T) {
		err := reg.Register("js", TestItem{ID: 3})

		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("Register() duplicate should return ErrAlreadyExists, got %v", err)
		}
	})
}

func TestGet(t *testing.T) {
	reg := New[TestItem]()
	item := TestItem{ID: 1, Value: "value1"}
	_ = reg.Register("css", item)

	t.Run("get existing item", func(t *testing.T) {
		got, err := reg.Get("css")

		if err != nil {
			t.Fatalf("Get() error = %v, want nil", err)
		}

		if got != item {
			t.Errorf("Get() = %+v, want %+v", got, item)
		}
	})

	t.Run("get non-existing item", func(t *testing.T) {
		_, err := reg.Get("nonexistent")

		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Get() non-existing should return ErrNotFound, got %v", err)
		}
	})

	t.Run("lookup mirrors get", func(t *testing.T) {
		if _, ok := reg.Lookup("css"); !ok {
			t.Error("Lookup(css) should succeed")
		}
		if _, ok := reg.Lookup("nonexistent"); ok {
			t.Error("Lookup(nonexistent) should fail")
		}
	})
}

func TestList(t *testing.T) {
	reg := New[TestItem]()

	for i, name := range []string{"charlie", "alpha", "bravo"} {
		_ = reg.Register(name, TestItem{ID: i})
	}

	list := reg.List()
	expected := []string{"alpha", "bravo", "charlie"}

	if len(list) != len(expected) {
		t.Fatalf("List() returned %d items, want %d", len(list), len(expected))
	}

	for i, name := range list {
		if name != expected[i] {
			t.Errorf("List()[%d] = %s, want %s", i, name, expected[i])
		}
	}
}

func TestHas(t *testing.T) {
	reg := New[TestItem]()
	_ = reg.Register("item1", TestItem{ID: 1})

	tests := []struct {
		name     string
		itemName string
		want     bool
	}{
		{"existing item", "item1", true},
		{"non-existing item", "item2", false},
		{"empty name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.Has(tt.itemName); got != tt.want {
				t.Errorf("Has(%s) = %v, want %v", tt.itemName, got, tt.want)
			}
		})
	}
}

func TestSeal(t *testing.T) {
	reg := New[TestItem]()
	_ = reg.Register("js", TestItem{ID: 1})
	reg.Seal()

	err := reg.Register("ts", TestItem{ID: 2})
	if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
		t.Errorf("Register() after Seal() should return ErrInvalidInput, got %v", err)
	}

	if !reg.Has("js") {
		t.Error("items registered before Seal() must stay readable")
	}
}

func TestMustRegister(t *testing.T) {
	reg := New[TestItem]()
	MustRegister(reg, "js", TestItem{ID: 1})

	defer func() {
		if recover() == nil {
			t.Error("MustRegister() duplicate should panic")
		}
	}()
	MustRegister(reg, "js", TestItem{ID: 2})
}
