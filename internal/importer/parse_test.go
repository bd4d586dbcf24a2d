package importer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tagreview/internal/importer"
)

func TestParseArray(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		delimiter string
		want      []string
	}{
		{"empty", "", ",", []string{}},
		{"whitespace", "   ", ",", []string{}},
		{"brackets only", "[]", ",", []string{}},
		{"plain", "Industry, Government", ",", []string{"Industry", "Government"}},
		{"python list", "['Industry', \"Consumer\"]", ",", []string{"Industry", "Consumer"}},
		{"drops empties", "a,, ,b,", ",", []string{"a", "b"}},
		{"custom delimiter", "a; b;c", ";", []string{"a", "b", "c"}},
		{"default delimiter", "a,b", "", []string{"a", "b"}},
		{"keeps order", "z,a,m", ",", []string{"z", "a", "m"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := importer.ParseArray(tc.raw, tc.delimiter)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ParseArray(%q) mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}

func TestCompactTags(t *testing.T) {
	got := importer.CompactTags([]string{"", "x", " ", "y", "", "", "z", ""})
	if diff := cmp.Diff([]string{"x", "y", "z"}, got); diff != "" {
		t.Fatalf("CompactTags mismatch (-want +got):\n%s", diff)
	}
	if got := importer.CompactTags(make([]string, 8)); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestFingerprintStability(t *testing.T) {
	base := importer.Fingerprint("A", "i1", []string{"x", "y"})
	if base != importer.Fingerprint(" A ", "i1\n", []string{"x", "y"}) {
		t.Fatal("fingerprint should ignore surrounding whitespace")
	}
	if importer.Fingerprint("A", "caf\u00e9", nil) != importer.Fingerprint("A", "cafe\u0301", nil) {
		t.Fatal("fingerprint should be NFC normalized")
	}
	distinct := []string{
		importer.Fingerprint("B", "i1", []string{"x", "y"}),
		importer.Fingerprint("A", "i2", []string{"x", "y"}),
		importer.Fingerprint("A", "i1", []string{"y", "x"}),
		importer.Fingerprint("A", "i1", []string{"x"}),
		importer.Fingerprint("A", "i1", []string{"xy"}),
	}
	for i, fp := range distinct {
		if fp == base {
			t.Fatalf("case %d collided with base fingerprint", i)
		}
	}
}

func TestFingerprintFieldBoundaries(t *testing.T) {
	pairs := []struct {
		name string
		a, b string
	}{
		{
			"separator inside tag",
			importer.Fingerprint("A", "i1", []string{"a\x1fb"}),
			importer.Fingerprint("A", "i1", []string{"a", "b"}),
		},
		{
			"separator inside issue",
			importer.Fingerprint("A", "i1\x1ex", nil),
			importer.Fingerprint("A", "i1", []string{"x"}),
		},
		{
			"text moved between source and issue",
			importer.Fingerprint("AB", "C", nil),
			importer.Fingerprint("A", "BC", nil),
		},
		{
			"empty tag list versus one empty tag",
			importer.Fingerprint("A", "i1", nil),
			importer.Fingerprint("A", "i1", []string{""}),
		},
	}
	for _, tc := range pairs {
		if tc.a == tc.b {
			t.Fatalf("%s: fingerprints collide", tc.name)
		}
	}
}
