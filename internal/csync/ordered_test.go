package csync

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderedMap_KeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	m.Set("a", 20) // overwrite keeps position

	if diff := cmp.Diff([]string{"c", "a", "b"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 20, 3}, m.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}

	m.Delete("c")
	m.Set("c", 4)
	if diff := cmp.Diff([]string{"a", "b", "c"}, m.Keys()); diff != "" {
		t.Errorf("Keys() after re-insert mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderedMap_Update(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("speed", 5)

	tests := []struct {
		name      string
		key       string
		fn        func(int) (int, error)
		wantFound bool
		wantErr   bool
		wantValue int
	}{
		{
			name:      "applies_result",
			key:       "speed",
			fn:        func(v int) (int, error) { return v + 1, nil },
			wantFound: true,
			wantValue: 6,
		},
		{
			name:      "error_leaves_value",
			key:       "speed",
			fn:        func(v int) (int, error) { return 100, errors.New("rejected") },
			wantFound: true,
			wantErr:   true,
			wantValue: 6,
		},
		{
			name:      "missing_key",
			key:       "nope",
			fn:        func(v int) (int, error) { t.Fatal("fn called for missing key"); return 0, nil },
			wantFound: false,
			wantValue: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := m.Update(tt.key, tt.fn)
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got, _ := m.Get("speed"); got != tt.wantValue {
				t.Errorf("value = %d, want %d", got, tt.wantValue)
			}
		})
	}
}

func TestOrderedMap_ReplaceWith(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("old", 1)

	other := NewOrderedMap[string, int]()
	other.Set("x", 1)
	other.Set("y", 2)

	m.ReplaceWith(other)
	other.Set("z", 3)

	if diff := cmp.Diff([]string{"x", "y"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if m.Has("old") {
		t.Error("old key survived ReplaceWith")
	}
}

func TestOrderedMap_ConcurrentAccess(t *testing.T) {
	m := NewOrderedMap[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Set(i, i)
			m.Range(func(int, int) bool { return true })
		}(i)
	}
	wg.Wait()

	if m.Len() != 50 {
		t.Errorf("Len() = %d, want 50", m.Len())
	}
}
