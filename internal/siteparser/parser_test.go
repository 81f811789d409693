package siteparser

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parse(t *testing.T, html string) *SiteProfile {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return parseDocument(doc)
}

func TestParseDocument_FullMetaSet(t *testing.T) {
	profile := parse(t, `<html><head>
		<title>  Acme Coffee | Home  </title>
		<meta name="description" content="Small-batch roasted coffee.">
		<meta name="keywords" content="coffee, roastery, , subscription ">
		<meta property="og:site_name" content="Acme Coffee">
		<meta property="og:image" content="https://acme.example/og.png">
	</head><body><h1>Welcome</h1></body></html>`)

	if profile.Title != "Acme Coffee | Home" {
		t.Errorf("Title = %q", profile.Title)
	}
	if profile.Description != "Small-batch roasted coffee." {
		t.Errorf("Description = %q", profile.Description)
	}
	if profile.SiteName != "Acme Coffee" {
		t.Errorf("SiteName = %q", profile.SiteName)
	}
	if profile.ImageURL != "https://acme.example/og.png" {
		t.Errorf("ImageURL = %q", profile.ImageURL)
	}
	if len(profile.Keywords) != 3 || profile.Keywords[2] != "subscription" {
		t.Errorf("Keywords = %v", profile.Keywords)
	}
}

func TestParseDocument_OgFallbacks(t *testing.T) {
	profile := parse(t, `<html><head>
		<meta property="og:title" content="OG Title">
		<meta property="og:description" content="OG description">
	</head><body></body></html>`)

	if profile.Title != "OG Title" {
		t.Errorf("Title = %q, want og:title fallback", profile.Title)
	}
	if profile.Description != "OG description" {
		t.Errorf("Description = %q", profile.Description)
	}
}

func TestParseDocument_MetaDescriptionWinsOverOg(t *testing.T) {
	profile := parse(t, `<html><head>
		<meta name="description" content="plain one">
		<meta property="og:description" content="og one">
	</head></html>`)

	if profile.Description != "plain one" {
		t.Errorf("Description = %q, first match must win", profile.Description)
	}
}

func TestParseDocument_H1Fallback(t *testing.T) {
	profile := parse(t, `<html><head></head><body><h1> Big Header </h1></body></html>`)

	if profile.Title != "Big Header" {
		t.Errorf("Title = %q, want h1 fallback", profile.Title)
	}
}

func TestParseDocument_EmptyPage(t *testing.T) {
	profile := parse(t, `<html><head></head><body></body></html>`)

	if profile.Title != "" || profile.Description != "" || len(profile.Keywords) != 0 {
		t.Errorf("empty page parsed into %+v", profile)
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"a, b, c", 3},
		{"a,,b", 2},
		{"  ", 0},
		{"single", 1},
	}
	for _, tt := range tests {
		if got := splitKeywords(tt.input); len(got) != tt.want {
			t.Errorf("splitKeywords(%q) = %v, want %d entries", tt.input, got, tt.want)
		}
	}
}
