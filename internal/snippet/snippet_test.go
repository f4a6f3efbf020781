package snippet

import "testing"

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	if got, want := len(Filter("")), len(Catalog()); got != want {
		t.Errorf("Filter(\"\") returned %d entries, want %d", got, want)
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	lower := Filter("sql_int")
	upper := Filter("SQL_INT")
	if len(lower) == 0 {
		t.Fatal("no match for sql_int")
	}
	if len(lower) != len(upper) {
		t.Errorf("case sensitivity: %d vs %d matches", len(lower), len(upper))
	}
}

func TestFilterMatchesLabelSubstring(t *testing.T) {
	got := Filter("parameter")
	if len(got) == 0 {
		t.Fatal("no label matches for 'parameter'")
	}
	for _, e := range got {
		if e.Insert == "" {
			t.Errorf("entry %q has no insert text", e.ID)
		}
	}
}

func TestFilterNoMatch(t *testing.T) {
	if got := Filter("zzz-nothing"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestCatalogIsCopied(t *testing.T) {
	a := Catalog()
	a[0].ID = "mutated"
	if Catalog()[0].ID == "mutated" {
		t.Error("Catalog returns a live reference to the backing array")
	}
}
