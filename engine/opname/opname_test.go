package opname

import (
	"errors"
	"testing"

	"github.com/basis-fem/basis/tensor"
)

func fullTable() Table {
	t := make(Table, len(Canonical))
	for _, name := range Canonical {
		t[name] = "-"
	}
	return t
}

func TestResolve(t *testing.T) {
	tbl := Table{"add": "floats.AddTo"}
	got, err := tbl.Resolve("add")
	if err != nil || got != "floats.AddTo" {
		t.Errorf("Resolve(add) = %q, %v; want floats.AddTo, nil", got, err)
	}

	if _, err := tbl.Resolve("sub"); !errors.Is(err, tensor.ErrMissingOperation) {
		t.Errorf("Resolve of absent name returned %v, want ErrMissingOperation", err)
	}
}

func TestMerge(t *testing.T) {
	base := Table{"concat": "concatenate", "add": "add"}
	merged := base.Merge(Table{"concat": "concat"})
	if merged["concat"] != "concat" || merged["add"] != "add" {
		t.Errorf("merged = %v", merged)
	}
	// base untouched
	if base["concat"] != "concatenate" {
		t.Error("Merge mutated the receiver")
	}
}

func TestValidate(t *testing.T) {
	full := fullTable()
	if err := Validate(full); err != nil {
		t.Errorf("complete table failed validation: %v", err)
	}

	delete(full, "tensorprod")
	if err := Validate(full); !errors.Is(err, tensor.ErrMissingOperation) {
		t.Errorf("incomplete table returned %v, want ErrMissingOperation", err)
	}
}

func TestCanonicalHasNoDuplicates(t *testing.T) {
	seen := make(map[string]bool, len(Canonical))
	for _, name := range Canonical {
		if seen[name] {
			t.Errorf("canonical name %q listed twice", name)
		}
		seen[name] = true
	}
}
