package validate_test

import (
	"strings"
	"testing"

	"faceswapadmin/internal/validate"
)

func TestID(t *testing.T) {
	cases := map[string]bool{"1": true, " 42 ": true, "0": false, "-3": false, "abc": false, "": false}
	for in, want := range cases {
		if _, ok := validate.ID(in); ok != want {
			t.Errorf("ID(%q) ok=%v, want %v", in, ok, want)
		}
	}
}

func TestNameTrimsWithoutLengthLimit(t *testing.T) {
	if got, ok := validate.Name("  Animals "); !ok || got != "Animals" {
		t.Fatalf("got %q %v", got, ok)
	}
	if _, ok := validate.Name("   "); ok {
		t.Fatal("blank name accepted")
	}
	long := strings.Repeat("猫", 80)
	if got, ok := validate.Name(long); !ok || got != long {
		t.Fatalf("long multibyte name rejected: %v", ok)
	}
}

func TestTextRequiresContent(t *testing.T) {
	if got, ok := validate.Text("  Hello \n"); !ok || got != "Hello" {
		t.Fatalf("got %q %v", got, ok)
	}
	if _, ok := validate.Text("\t "); ok {
		t.Fatal("blank text accepted")
	}
	if _, ok := validate.Text(strings.Repeat("b", 5000)); !ok {
		t.Fatal("long body rejected")
	}
}

func TestTopic(t *testing.T) {
	if got, ok := validate.Topic("Summer Sale", true); !ok || got != "summer-sale" {
		t.Fatalf("normalized topic: got %q %v", got, ok)
	}
	if got, ok := validate.Topic(" Summer Sale ", false); !ok || got != "Summer Sale" {
		t.Fatalf("topic should pass through trimmed: got %q %v", got, ok)
	}
	if _, ok := validate.Topic("  ", false); ok {
		t.Fatal("blank topic accepted")
	}
	if _, ok := validate.Topic("!!!", true); ok {
		t.Fatal("topic with nothing left after normalizing accepted")
	}
	if got, ok := validate.Topic("all_users", false); !ok || got != "all_users" {
		t.Fatalf("plain topic: got %q %v", got, ok)
	}
	if _, ok := validate.Topic("", true); ok {
		t.Fatal("empty topic accepted")
	}
}

func TestPageAndRows(t *testing.T) {
	if validate.Page("") != 1 || validate.Page("0") != 1 || validate.Page("3") != 3 {
		t.Fatal("page parsing")
	}
	if validate.RowsPerPage("25") != 25 || validate.RowsPerPage("7") != 10 {
		t.Fatal("rows per page clamp")
	}
}
