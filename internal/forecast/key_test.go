package forecast

import "testing"

func TestKeyNormalizeEquality(t *testing.T) {
	a := Key{Location: "  Berlin ", Day: DayToday, Hour: 14}.Normalize()
	b := Key{Location: "berlin", Day: DayToday, Hour: 14}.Normalize()
	if a != b {
		t.Fatalf("normalized keys should be equal: %+v vs %+v", a, b)
	}

	c := Key{Location: "berlin", Day: DayTomorrow, Hour: 14}.Normalize()
	if a == c {
		t.Fatalf("keys with different days must not be equal")
	}
}

func TestKeySlug(t *testing.T) {
	k := Key{Location: "Berlin", Day: DayTomorrow, Hour: 9}.Normalize()
	if got := k.Slug(); got != "berlin_1_9" {
		t.Fatalf("expected slug berlin_1_9, got %s", got)
	}
}

func TestKeyValidate(t *testing.T) {
	ok := Key{Location: "berlin", Day: DayToday, Hour: 0}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}

	badHour := Key{Location: "berlin", Day: DayToday, Hour: 24}
	if KindOf(badHour.Validate()) != KindInvalidHour {
		t.Fatalf("hour 24 should be invalid hour")
	}

	empty := Key{Location: "", Day: DayToday, Hour: 10}
	if KindOf(empty.Validate()) != KindInvalidLocation {
		t.Fatalf("empty location should be invalid location")
	}

	nonAlpha := Key{Location: "new york", Day: DayToday, Hour: 10}
	if KindOf(nonAlpha.Validate()) != KindInvalidLocation {
		t.Fatalf("non-alpha location should be invalid location")
	}
}
