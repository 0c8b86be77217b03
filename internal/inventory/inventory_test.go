package inventory

import (
	"slices"
	"testing"
)

func TestAddKeepsOrder(t *testing.T) {
	s := New()
	s.Add("small key")
	s.Add("code hint: 1234")
	s.Add("room key")

	want := []string{"small key", "code hint: 1234", "room key"}
	if got := s.Items(); !slices.Equal(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	once := New()
	once.Add("small key")

	twice := New()
	if !twice.Add("small key") {
		t.Error("first Add returned false")
	}
	if twice.Add("small key") {
		t.Error("second Add returned true")
	}

	if !slices.Equal(once.Items(), twice.Items()) {
		t.Errorf("add(x);add(x) = %v, add(x) = %v", twice.Items(), once.Items())
	}
}

func TestContainsIsExact(t *testing.T) {
	s := New()
	s.Add("code hint: 1234")

	for _, label := range []string{"code hint: 123", "Code hint: 1234", "code hint: 1234 ", "1234"} {
		if s.Contains(label) {
			t.Errorf("Contains(%q) = true, want false", label)
		}
	}
	if !s.Contains("code hint: 1234") {
		t.Error("Contains(exact label) = false")
	}
}

func TestOnChangeFiresOnlyOnMutation(t *testing.T) {
	s := New()
	var calls int
	var last []string
	s.OnChange(func(st *Store) {
		calls++
		last = st.Items()
	})

	s.Add("small key")
	s.Add("small key")
	s.Add("room key")

	if calls != 2 {
		t.Errorf("listener called %d times, want 2", calls)
	}
	if !slices.Equal(last, []string{"small key", "room key"}) {
		t.Errorf("listener saw %v", last)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := New()
	s.Add("small key")
	items := s.Items()
	items[0] = "tampered"

	if !s.Contains("small key") || s.Items()[0] != "small key" {
		t.Error("Items() exposed internal slice")
	}
}
