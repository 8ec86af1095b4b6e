package utils

import (
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "wedding name with apostrophe and punctuation",
			in:   "Sarah & Michael's Wedding!!",
			want: "sarah-michael-s-wedding",
		},
		{
			name: "plain lowercase name passes through",
			in:   "summer party",
			want: "summer-party",
		},
		{
			name: "upper case is folded",
			in:   "Big Birthday BASH",
			want: "big-birthday-bash",
		},
		{
			name: "surrounding whitespace is trimmed",
			in:   "  spaced out  ",
			want: "spaced-out",
		},
		{
			name: "punctuation runs collapse to one hyphen",
			in:   "new---year...2027",
			want: "new-year-2027",
		},
		{
			name: "digits survive",
			in:   "Class of 2026",
			want: "class-of-2026",
		},
		{
			name: "only punctuation yields empty",
			in:   "!!! ??? ***",
			want: "",
		},
		{
			name: "empty input yields empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	inputs := []string{
		"Sarah & Michael's Wedding!!",
		"  --weird--input--  ",
		"émigré café",
		"100% fun",
		"a",
	}

	for _, in := range inputs {
		got := Slugify(in)
		if got == "" {
			continue
		}
		if !shape.MatchString(got) {
			t.Fatalf("Slugify(%q) = %q does not match the slug shape", in, got)
		}
		if again := Slugify(got); again != got {
			t.Fatalf("Slugify is not idempotent: %q -> %q", got, again)
		}
	}
}
