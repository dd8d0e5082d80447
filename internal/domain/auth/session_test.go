package auth

import "testing"

func TestOwnerKey(t *testing.T) {
	if Anonymous.OwnerKey() != "" {
		t.Fatal("anonymous sessions have no owner")
	}
	a := NewSession(" tok ", "u1")
	if a.OwnerKey() != NewSession("tok", "someone-else").OwnerKey() {
		t.Fatal("owner must depend on the token only")
	}
	if a.OwnerKey() == NewSession("tok2", "u1").OwnerKey() {
		t.Fatal("different tokens must not share an owner")
	}
	if len(a.OwnerKey()) != 32 {
		t.Fatalf("unexpected key %q", a.OwnerKey())
	}
}
