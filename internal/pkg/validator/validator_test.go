package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"08:00", "08:00:00", "23:59:59", "00:00"}
	invalid := []string{"24:00", "8am", "08:60", "", "08-00"}
	for _, s := range valid {
		if _, ok := IsValidClockTime(s); !ok {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidClockTime(s); ok {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidClockTimeParsesWallClock(t *testing.T) {
	parsed, ok := IsValidClockTime("08:30:15")
	if !ok {
		t.Fatal("IsValidClockTime(08:30:15) = false, want true")
	}
	if parsed.Hour() != 8 || parsed.Minute() != 30 || parsed.Second() != 15 {
		t.Errorf("parsed wall clock = %02d:%02d:%02d, want 08:30:15",
			parsed.Hour(), parsed.Minute(), parsed.Second())
	}
}

func TestIsValidLatitude(t *testing.T) {
	valid := []float64{0, -90, 90, -6.2, 45.5}
	invalid := []float64{-90.1, 90.1, 180}
	for _, lat := range valid {
		if !IsValidLatitude(lat) {
			t.Errorf("IsValidLatitude(%v) = false, want true", lat)
		}
	}
	for _, lat := range invalid {
		if IsValidLatitude(lat) {
			t.Errorf("IsValidLatitude(%v) = true, want false", lat)
		}
	}
}

func TestIsValidLongitude(t *testing.T) {
	valid := []float64{0, -180, 180, 106.816666}
	invalid := []float64{-180.1, 180.1, 360}
	for _, lng := range valid {
		if !IsValidLongitude(lng) {
			t.Errorf("IsValidLongitude(%v) = false, want true", lng)
		}
	}
	for _, lng := range invalid {
		if IsValidLongitude(lng) {
			t.Errorf("IsValidLongitude(%v) = true, want false", lng)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"masuk", "keluar", "absent"}
	if !IsInSlice("masuk", slice) {
		t.Error("IsInSlice(masuk) = false, want true")
	}
	if IsInSlice("berhasil", slice) {
		t.Error("IsInSlice(berhasil) = true, want false")
	}
	if IsInSlice("", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}
