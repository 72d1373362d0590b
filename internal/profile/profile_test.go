package profile

import "testing"

func TestCategoriesOrder(t *testing.T) {
	want := []Category{
		"Full Stack Developer",
		"Marketing Specialist",
		"Accounting",
		"Cybersecurity Analyst",
		"Data Scientist",
	}

	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	got[0] = "mutated"
	if Categories()[0] != FullStackDeveloper {
		t.Fatalf("Categories must return a copy")
	}
}

func TestEveryCategoryHasProfile(t *testing.T) {
	for _, c := range Categories() {
		p, ok := Lookup(c)
		if !ok {
			t.Fatalf("missing profile for %s", c)
		}
		if len(p.RoleKeywords) == 0 || len(p.SkillKeywords) == 0 {
			t.Fatalf("empty keyword list for %s", c)
		}
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup(DataScientist)
	if !ok {
		t.Fatalf("expected data scientist profile")
	}
	if p.RoleKeywords[0] != "data scientist" || p.SkillKeywords[len(p.SkillKeywords)-1] != "r" {
		t.Fatalf("unexpected profile: %+v", p)
	}

	p.RoleKeywords[0] = "mutated"
	again, _ := Lookup(DataScientist)
	if again.RoleKeywords[0] != "data scientist" {
		t.Fatalf("Lookup must return a copy")
	}

	if _, ok := Lookup("Astronaut"); ok {
		t.Fatalf("unexpected profile for unknown category")
	}
}
