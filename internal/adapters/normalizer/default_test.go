package normalizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeStrict(t *testing.T) {
	n := NewDefaultNormalizer()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"bom only", "\ufeff", []string{}},
		{"bom and punctuation", "\ufeffSalam, Dünya!", []string{"salam", "dunya"}},
		{"dotted capital i", "İstanbul", []string{"istanbul"}},
		{"schwa both cases", "Əli gəldi", []string{"eli", "geldi"}},
		{"w folded on both passes", "Wow", []string{"sos"}},
		{"period stripped from token", "Kitablar. Evlər", []string{"kitablar", "evler"}},
		{"punctuation only token kept empty", "...", []string{""}},
		{"digits kept", "3.14 faiz", []string{"314", "faiz"}},
		{"hyphen removed by filter", "e-poçt", []string{"epoct"}},
		{"tab is not a separator", "a\tb", []string{"ab"}},
		{"newline separates", "bir\niki", []string{"bir", "iki"}},
		{"uppercase diacritic dropped", "Şəhər", []string{"eher"}},
		{"non latin dropped", "Привет мир", []string{}},
		{"whitespace runs", "  bir   iki  ", []string{"bir", "iki"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q)\n  got  %q\n  want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCombiningDot(t *testing.T) {
	n := NewNormalizerFactory().CreateNormalizer(LegacyNormalizerType)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"uppercase diacritic folded on second pass", "Şəhər", []string{"seher"}},
		{"punctuation stripped per token", "Üzüm, çörək!", []string{"uzum", "corek"}},
		{"hyphen kept", "e-poçt", []string{"e-poct"}},
		{"tab separates", "a\tb", []string{"a", "b"}},
		{"disallowed rune with combining dot removed", "x§\u0307y", []string{"xy"}},
		{"combining dot after permitted rune kept", "i\u0307", []string{"i\u0307"}},
		{"punctuation only token kept empty", "-- !!", []string{"--", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q)\n  got  %q\n  want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotentOnCleanText(t *testing.T) {
	n := NewDefaultNormalizer()

	inputs := []string{
		"Bakı Azərbaycanın paytaxtıdır.",
		"Gözəl şəhərlərimiz, 2024-cü il!",
		"Wikipedia: açıq ensiklopediya",
	}

	for _, input := range inputs {
		first := n.Normalize(input)
		second := n.Normalize(strings.Join(first, " "))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Normalize not stable for %q\n  first  %q\n  second %q", input, first, second)
		}
	}
}

func TestFactoryDefault(t *testing.T) {
	n := NewNormalizerFactory().CreateNormalizer(DefaultNormalizerType)
	got := n.Normalize("Şəhər")
	if !reflect.DeepEqual(got, []string{"eher"}) {
		t.Errorf("default factory normalizer should filter strictly, got %q", got)
	}
}
