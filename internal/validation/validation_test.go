package validation

import (
	"strings"
	"testing"
)

func TestValidateAmount(t *testing.T) {
	for _, ok := range []string{"1", "0.01", " 42.50 ", "1000000"} {
		if err := ValidateAmount(ok); err != nil {
			t.Errorf("expected %q accepted, got %v", ok, err)
		}
	}
	for _, bad := range []string{"", "abc", "-5", "0", "1.2.3"} {
		if err := ValidateAmount(bad); err == nil {
			t.Errorf("expected %q rejected", bad)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate(""); err != nil {
		t.Errorf("expected empty date accepted, got %v", err)
	}
	if err := ValidateDate("2026-02-14"); err != nil {
		t.Errorf("expected valid date accepted, got %v", err)
	}
	for _, bad := range []string{"14-02-2026", "2026/02/14", "not a date"} {
		if err := ValidateDate(bad); err == nil {
			t.Errorf("expected %q rejected", bad)
		}
	}
}

func TestValidateWalletName(t *testing.T) {
	if err := ValidateWalletName("Cash"); err != nil {
		t.Errorf("expected valid name accepted, got %v", err)
	}
	if err := ValidateWalletName("   "); err == nil {
		t.Error("expected blank name rejected")
	}
	if err := ValidateWalletName(strings.Repeat("x", 101)); err == nil {
		t.Error("expected over-long name rejected")
	}
}
