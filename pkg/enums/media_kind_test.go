package enums

import "testing"

func TestNormalizeMediaKind(t *testing.T) {
	cases := map[string]MediaKind{
		"":         MediaKindNoMedia,
		"none":     MediaKindNoMedia,
		"no-media": MediaKindNoMedia,
		"image":    MediaKindImage,
		"video":    MediaKindVideo,
		"gif":      MediaKind("gif"),
	}
	for input, want := range cases {
		if got := NormalizeMediaKind(input); got != want {
			t.Fatalf("NormalizeMediaKind(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseMediaKindAcceptsLegacyNone(t *testing.T) {
	kind, err := ParseMediaKind("none")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != MediaKindNoMedia {
		t.Fatalf("expected no-media, got %q", kind)
	}
}

func TestParseMediaKindRejectsUnknown(t *testing.T) {
	if _, err := ParseMediaKind("gif"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestParseLeadStatus(t *testing.T) {
	if _, err := ParseLeadStatus("Archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	status, err := ParseLeadStatus("Contacted")
	if err != nil || status != LeadStatusContacted {
		t.Fatalf("ParseLeadStatus(Contacted) = %q, %v", status, err)
	}
}

func TestZodiacSigns(t *testing.T) {
	if len(ZodiacSigns) != 12 {
		t.Fatalf("expected 12 signs, got %d", len(ZodiacSigns))
	}
	if _, err := ParseZodiacSign("Ophiuchus"); err == nil {
		t.Fatal("expected error for unknown sign")
	}
	sign, err := ParseZodiacSign("Meen (Pisces)")
	if err != nil || sign != ZodiacMeen {
		t.Fatalf("ParseZodiacSign = %q, %v", sign, err)
	}
}
