package enums

import "testing"

func TestEditModeTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to EditMode
		want     bool
	}{
		{EditModeIdle, EditModeLFDeleteSelect, true},
		{EditModeLFDeleteSelect, EditModeIdle, true},
		{EditModeIdle, EditModeIdle, true},
		{EditModeLFDeleteSelect, EditModeLFDeleteSelect, true},
		{EditModeIdle, EditMode("K2_LF_DELETE_SELECT"), false},
		{EditMode("bogus"), EditModeIdle, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestParseEditMode(t *testing.T) {
	t.Parallel()

	if mode, err := ParseEditMode(""); err != nil || mode != EditModeIdle {
		t.Fatalf("empty input should map to idle, got %q err=%v", mode, err)
	}
	if _, err := ParseEditMode("K2_LF_DELETE_SELECT"); err == nil {
		t.Fatal("expected untyped legacy string to be rejected")
	}
}

func TestFabricTypeLightFilterAllowList(t *testing.T) {
	t.Parallel()

	for _, ft := range []FabricType{FabricTypeB2, FabricTypeB3, FabricTypeB4} {
		if !ft.LightFilterEligible() {
			t.Fatalf("%s should be LF eligible", ft)
		}
	}
	for _, ft := range []FabricType{FabricTypeB1, FabricTypeB5, FabricTypeSN, FabricTypeLF, FabricType("")} {
		if ft.LightFilterEligible() {
			t.Fatalf("%s should not be LF eligible", ft)
		}
	}
}

func TestParseExportFormat(t *testing.T) {
	t.Parallel()

	got, err := ParseExportFormat(" .CSV ")
	if err != nil || got != ExportFormatCSV {
		t.Fatalf("expected csv, got %q err=%v", got, err)
	}
	if got.ContentType() != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got.ContentType())
	}
	if _, err := ParseExportFormat("docx"); err == nil {
		t.Fatal("expected docx to be rejected")
	}
}
