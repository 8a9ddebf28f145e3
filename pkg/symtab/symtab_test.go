package symtab

import (
	"errors"
	"testing"
)

func TestParseSymbolScopes(t *testing.T) {
	cases := []struct {
		raw       string
		wantScope Scope
		wantClean string
	}{
		{".private_var:", ScopePrivate, "private_var"},
		{".private_var", ScopePrivate, "private_var"},
		{"local_label:", ScopeLocal, "local_label"},
		{"exported_sym::", ScopeGlobal, "exported_sym"},
	}
	for _, c := range cases {
		sym, err := ParseSymbol(c.raw)
		if err != nil {
			t.Fatalf("ParseSymbol(%q): unexpected error: %v", c.raw, err)
		}
		if sym.Scope != c.wantScope || sym.Clean != c.wantClean {
			t.Fatalf("ParseSymbol(%q) = %+v, want scope=%v clean=%q", c.raw, sym, c.wantScope, c.wantClean)
		}
	}
}

func TestParseSymbolRequiresAffix(t *testing.T) {
	_, err := ParseSymbol("plain_name")
	var scopeErr *InvalidSymbolScopeError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("expected InvalidSymbolScopeError for affix-less name, got %v", err)
	}
	if IsValidSymbol("LD") || IsValidSymbol("BC") {
		t.Fatalf("bare mnemonic/register names must not qualify as symbols")
	}
}

func TestParseSymbolRejectsLeadingDigit(t *testing.T) {
	if _, err := ParseSymbol("1bad:"); err == nil {
		t.Fatalf("expected error for symbol starting with a digit")
	}
}

func TestIsValidLabelName(t *testing.T) {
	for _, good := range []string{"USER_IO", "var1", "_tmp"} {
		if !IsValidLabelName(good) {
			t.Fatalf("IsValidLabelName(%q) = false, want true", good)
		}
	}
	for _, bad := range []string{"", "1bad", "has space", "colon:"} {
		if IsValidLabelName(bad) {
			t.Fatalf("IsValidLabelName(%q) = true, want false", bad)
		}
	}
}

func TestLabelStoreReplaceSemantics(t *testing.T) {
	store := NewLabelStore()
	if !store.Push(Label{Name: "VAR_NAME", Value: 256}, false) {
		t.Fatalf("first push should succeed")
	}
	if store.Push(Label{Name: "var_name", Value: 1}, false) {
		t.Fatalf("duplicate push without replace should fail")
	}
	if !store.Push(Label{Name: "var_name", Value: 1}, true) {
		t.Fatalf("push with replace should succeed")
	}
	v, ok := store.ValueOf("VAR_NAME")
	if !ok || v != 1 {
		t.Fatalf("ValueOf(VAR_NAME) = (%d, %v), want (1, true)", v, ok)
	}
}

func TestLabelStoreUnresolvedLookup(t *testing.T) {
	store := NewLabelStore()
	if _, ok := store.ValueOf("MISSING"); ok {
		t.Fatalf("ValueOf(MISSING) should report ok=false")
	}
}

func TestSymbolAndLabelNamespacesAreDisjoint(t *testing.T) {
	symbols := NewSymbolStore()
	labels := NewLabelStore()
	sym, _ := ParseSymbol("shared_name:")
	sym.Address = 0x8000
	symbols.Push(sym, false)
	labels.Push(Label{Name: "shared_name", Value: 42}, false)

	foundSym, ok := symbols.Find("shared_name")
	if !ok || foundSym.Address != 0x8000 {
		t.Fatalf("symbol lookup failed: %+v %v", foundSym, ok)
	}
	v, ok := labels.ValueOf("shared_name")
	if !ok || v != 42 {
		t.Fatalf("label lookup failed: %d %v", v, ok)
	}
}
