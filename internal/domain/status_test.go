package domain

import "testing"

func TestDeliveryStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []DeliveryStatus{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []DeliveryStatus{"", "PENDING", "done"} {
		if s.Valid() {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestDeliveryStatus_Terminal(t *testing.T) {
	t.Parallel()

	if StatusPending.Terminal() {
		t.Fatal("pending must not be terminal")
	}
	if !StatusApproved.Terminal() || !StatusRejected.Terminal() {
		t.Fatal("approved and rejected must be terminal")
	}
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	if !RoleAdmin.Valid() || !RoleCourier.Valid() {
		t.Fatal("admin and courier must be valid roles")
	}
	if Role("root").Valid() {
		t.Fatal("unknown role must be invalid")
	}
}

func TestUser_HasCompany(t *testing.T) {
	t.Parallel()

	u := &User{Companies: []Company{CompanyJadlog, CompanyJet}}
	if !u.HasCompany(CompanyJet) {
		t.Fatal("expected JET in scope")
	}
	if u.HasCompany(CompanyMercadoLivre) {
		t.Fatal("MERCADO_LIVRE must not be in scope")
	}
}
