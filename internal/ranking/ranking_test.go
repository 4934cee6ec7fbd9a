package ranking

import (
	"testing"

	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/model"
)

func makeRegistry() *model.Registry {
	reg := model.NewRegistry()
	for _, m := range []*model.SourceModel{
		{Name: "User", Package: "com.acme.models"},
		{Name: "Invoice", Package: "com.acme.models"},
		{Name: "UserService", Package: "com.acme.services"},
		{Name: "UserServiceImpl", Package: "com.acme.services.impl"},
		{Name: "User", Package: "com.acme.legacy"},
	} {
		reg.Put(m)
	}
	return reg
}

func keys(reg *model.Registry) []string {
	var out []string
	for _, m := range reg.Models() {
		out = append(out, m.Key())
	}
	return out
}

func TestTopNames(t *testing.T) {
	t.Parallel()

	reg := makeRegistry()
	ranked := []graph.Scored{
		{Key: "com.acme.models.User", Rank: 0.4},
		{Key: "com.acme.legacy.User", Rank: 0.3},
		{Key: "com.acme.services.UserService", Rank: 0.2},
		{Key: "gone.Type", Rank: 0.05},
		{Key: "com.acme.models.Invoice", Rank: 0.05},
	}

	got := TopNames(reg, ranked, 2)
	if len(got) != 2 || got[0] != "User" || got[1] != "UserService" {
		t.Errorf("TopNames(2) = %v", got)
	}

	all := TopNames(reg, ranked, 0)
	if len(all) != 3 {
		t.Errorf("TopNames(0) = %v, want 3 unique names", all)
	}
}

func TestSelectNames(t *testing.T) {
	t.Parallel()

	sub := SelectNames(makeRegistry(), []string{"User", "Missing"})
	got := keys(sub)
	want := []string{"com.acme.legacy.User", "com.acme.models.User"}
	if len(got) != len(want) {
		t.Fatalf("SelectNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterByType(t *testing.T) {
	t.Parallel()

	edges := []model.Edge{
		{From: "com.acme.services.UserService", To: "com.acme.services.impl.UserServiceImpl", Kind: model.Implements},
		{From: "com.acme.services.impl.UserServiceImpl", To: "com.acme.models.Invoice", Kind: model.Uses},
	}

	sub := FilterByType(makeRegistry(), edges, "impl")
	got := keys(sub)
	want := []string{
		"com.acme.models.Invoice",
		"com.acme.services.UserService",
		"com.acme.services.impl.UserServiceImpl",
	}
	if len(got) != len(want) {
		t.Fatalf("FilterByType = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterByPackage(t *testing.T) {
	t.Parallel()

	sub := FilterByPackage(makeRegistry(), "MODELS")
	if sub.Len() != 2 {
		t.Errorf("FilterByPackage len = %d, want 2", sub.Len())
	}
}

func TestFilterEdges(t *testing.T) {
	t.Parallel()

	sub := FilterByPackage(makeRegistry(), "services")
	edges := []model.Edge{
		{From: "com.acme.services.UserService", To: "com.acme.services.impl.UserServiceImpl"},
		{From: "com.acme.services.impl.UserServiceImpl", To: "com.acme.models.Invoice"},
	}
	got := FilterEdges(sub, edges)
	if len(got) != 1 || got[0].From != "com.acme.services.UserService" {
		t.Errorf("FilterEdges = %v", got)
	}
}
