package stoplist

import "testing"

func TestEnglish(t *testing.T) {
	m := English()
	if m.Len() != 179 {
		t.Errorf("English().Len() = %d, want 179", m.Len())
	}
	for _, w := range []string{"the", "a", "an", "of", "what", "your", "how", "up"} {
		if !m.IsStop(w) {
			t.Errorf("%q should be a stopword", w)
		}
	}
	for _, w := range []string{"hello", "weather", "thanks", "bye", "help"} {
		if m.IsStop(w) {
			t.Errorf("%q should not be a stopword", w)
		}
	}
}

func TestAddRemove(t *testing.T) {
	m := NewManager([]string{"Foo"})
	if !m.IsStop("foo") {
		t.Fatal("initial stops should be lowercased")
	}
	m.Add("BAR")
	m.Remove("foo")
	all := m.All()
	if len(all) != 1 || all[0] != "bar" {
		t.Errorf("All() = %v, want [bar]", all)
	}
}
