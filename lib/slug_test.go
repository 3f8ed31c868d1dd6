package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugifyTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Борщ", "borsch"},
		{"Котлеты по-киевски", "kotlety-po-kievski"},
		{"Пельмени (ручная лепка)", "pelmeni-ruchnaya-lepka"},
		{"  Caesar Salad  ", "caesar-salad"},
		{"Объём 0.5 л", "obem-0-5-l"},
		{"Щи — суп дня", "schi-sup-dnya"},
		{"Combo №1", "combo-1"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SlugifyTitle(tc.title), "title %q", tc.title)
	}
}

func TestSanitizeNumericString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"450", "450"},
		{"1 250,50 ₽", "1250.50"},
		{"12.34", "12.34"},
		{"12.34.56", "12.3456"},
		{"руб 300", "300"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeNumericString(tc.in), "input %q", tc.in)
	}
}
