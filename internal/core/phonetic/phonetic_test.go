package phonetic

import (
	"reflect"
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct{ in, out string }{
		{"element", "lmnt"},
		{"liquid", "lqd"},
		{"LMNT", "lmnt"},
		{"aeiou", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Strip(tc.in); got != tc.out {
			t.Fatalf("Strip(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestVariants_Table(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "single word",
			query: "element",
			want:  []string{"lmnt"},
		},
		{
			name:  "multi word per-word then all-words",
			query: "element citrus",
			want:  []string{"lmnt citrus", "element ctrs", "lmnt ctrs"},
		},
		{
			name:  "word with no vowels contributes nothing",
			query: "lmnt citrus",
			want:  []string{"lmnt ctrs"},
		},
		{
			name:  "vowel-only word does not vanish",
			query: "a tea",
			want:  []string{"a t"},
		},
		{
			name:  "empty",
			query: "",
			want:  nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Variants(tc.query); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Variants(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestClose(t *testing.T) {
	if !Close("element", "LMNT") {
		t.Fatal("element should be close to LMNT")
	}
	if !Close("LMNT Citrus", "lmnt") {
		t.Fatal("substring containment on stripped keys should match")
	}
	if Close("creatine", "whey") {
		t.Fatal("unrelated words should not match")
	}
	if Close("", "lmnt") {
		t.Fatal("blank never matches")
	}
}

func TestTransformDetected(t *testing.T) {
	if !TransformDetected("element citrus", "LMNT citrus") {
		t.Fatal("element -> LMNT should be detected")
	}
	if TransformDetected("vitamin d", "vitamin d") {
		t.Fatal("identical text is not a transformation")
	}
	if TransformDetected("creatine", "whey protein") {
		t.Fatal("unrelated rewrite is not a phonetic transformation")
	}
}
