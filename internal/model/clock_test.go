package model

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int
		wantOK bool
	}{
		{name: "simple", in: "8:32", want: 512, wantOK: true},
		{name: "zero padded", in: "08:32", want: 512, wantOK: true},
		{name: "zero", in: "0:00", want: 0, wantOK: true},
		{name: "long minutes", in: "19:59", want: 1199, wantOK: true},
		{name: "empty", in: "", wantOK: false},
		{name: "no colon", in: "832", wantOK: false},
		{name: "seconds overflow", in: "5:60", wantOK: false},
		{name: "negative", in: "-1:30", wantOK: false},
		{name: "garbage", in: "ab:cd", wantOK: false},
		{name: "extra colon", in: "1:2:3", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClock(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseClock(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{465, "07:45"},
		{512, "08:32"},
		{1199, "19:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestClockSeconds(t *testing.T) {
	known := GameEntry{TimeInPeriod: "2:15"}
	if got := ClockSeconds(known); got != 135 {
		t.Errorf("ClockSeconds = %d, want 135", got)
	}
	unknown := GameEntry{TimeInPeriod: ""}
	if got := ClockSeconds(unknown); got != UnknownTimeSeconds {
		t.Errorf("ClockSeconds = %d, want sentinel %d", got, UnknownTimeSeconds)
	}
}

func TestDateOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-01-15", "2026-01-15"},
		{"2026-01-15T19:30:00Z", "2026-01-15"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DateOnly(tt.in); got != tt.want {
			t.Errorf("DateOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsWin(t *testing.T) {
	wins := []string{"W", "OTW", "SOW"}
	losses := []string{"L", "OTL", "SOL", ""}
	for _, o := range wins {
		if !IsWin(o) {
			t.Errorf("IsWin(%q) = false, want true", o)
		}
	}
	for _, o := range losses {
		if IsWin(o) {
			t.Errorf("IsWin(%q) = true, want false", o)
		}
	}
}

func TestCanImport(t *testing.T) {
	tests := []struct {
		plan string
		want bool
	}{
		{"FREE", false},
		{"PRO", true},
		{"ELITE", true},
		{"", false},
	}
	for _, tt := range tests {
		u := User{Plan: tt.plan}
		if got := u.CanImport(); got != tt.want {
			t.Errorf("CanImport() with plan %q = %v, want %v", tt.plan, got, tt.want)
		}
	}
}

func TestValidatorClockRule(t *testing.T) {
	v := NewValidator()

	valid := EntryInput{
		PlayerID:     "p1",
		Date:         "2026-01-15",
		Opponent:     "FLA",
		Period:       "1",
		TimeInPeriod: "08:32",
		Situation:    "EV",
		GameOutcome:  "W",
		HomeAway:     "HOME",
	}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	empty := valid
	empty.TimeInPeriod = ""
	if err := v.Struct(empty); err != nil {
		t.Fatalf("empty time rejected: %v", err)
	}

	bad := valid
	bad.TimeInPeriod = "5:99"
	if err := v.Struct(bad); err == nil {
		t.Fatal("malformed time accepted")
	}
}
