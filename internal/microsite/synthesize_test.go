package microsite

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"qrfolio-backend/internal/uploads"
)

var testResume = uploads.Attachment{
	OriginalName: "cv.pdf",
	StoredName:   "1718000000000-cv.pdf",
	Path:         "uploads/1718000000000-cv.pdf",
	MimeType:     "application/pdf",
	SizeBytes:    42,
	Kind:         uploads.KindResume,
}

var testVideo = uploads.Attachment{
	OriginalName: "intro.mp4",
	StoredName:   "1718000000001-intro.mp4",
	Path:         "uploads/1718000000001-intro.mp4",
	MimeType:     "video/mp4",
	SizeBytes:    1024,
	Kind:         uploads.KindVideoFile,
}

type element struct {
	tag   string
	attrs map[string]string
}

// parseElements parses doc and returns every element in document order.
func parseElements(t *testing.T, doc string) []element {
	t.Helper()
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	var out []element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			attrs := make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
			out = append(out, element{tag: n.Data, attrs: attrs})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func countTag(els []element, tag string) int {
	n := 0
	for _, e := range els {
		if e.tag == tag {
			n++
		}
	}
	return n
}

func TestSynthesizeLinkedVideo(t *testing.T) {
	req, err := NewRequest(testResume, LinkedVideo{EmbedURL: "https://www.youtube.com/embed/abc123"}, Profile{})
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	doc, err := Synthesize(req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
		t.Fatalf("expected doctype, got %q", doc[:20])
	}
	els := parseElements(t, doc)
	if countTag(els, "script") != 0 {
		t.Fatalf("microsite must not contain scripts")
	}
	if countTag(els, "video") != 0 {
		t.Fatalf("linked video must not render a video element")
	}

	var embeds, viewers int
	for _, e := range els {
		if e.tag != "iframe" {
			continue
		}
		switch e.attrs["src"] {
		case "https://www.youtube.com/embed/abc123":
			embeds++
			if _, ok := e.attrs["allowfullscreen"]; !ok {
				t.Fatalf("embed iframe should allow fullscreen")
			}
		case "uploads/1718000000000-cv.pdf":
			viewers++
		default:
			t.Fatalf("unexpected iframe src %q", e.attrs["src"])
		}
	}
	if embeds != 1 || viewers != 1 {
		t.Fatalf("expected one embed and one resume viewer, got %d/%d", embeds, viewers)
	}
	if !strings.Contains(doc, "<title>My Portfolio</title>") {
		t.Fatalf("expected default title")
	}
}

func TestSynthesizeUploadedVideo(t *testing.T) {
	req, err := NewRequest(testResume, UploadedVideo{File: testVideo}, Profile{})
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	doc, err := Synthesize(req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	els := parseElements(t, doc)
	if countTag(els, "video") != 1 {
		t.Fatalf("expected exactly one video element")
	}
	if countTag(els, "iframe") != 1 {
		t.Fatalf("expected only the resume iframe")
	}
	var found bool
	for _, e := range els {
		if e.tag == "source" {
			found = true
			if e.attrs["src"] != testVideo.Path || e.attrs["type"] != "video/mp4" {
				t.Fatalf("unexpected source %+v", e.attrs)
			}
		}
	}
	if !found {
		t.Fatalf("expected a source element")
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	req, _ := NewRequest(testResume, LinkedVideo{EmbedURL: "https://www.youtube.com/embed/xyz987"}, Profile{Name: "Ada", About: "Hello *world*"})
	a, err := Synthesize(req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	b, err := Synthesize(req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestSynthesizeProfileEscaping(t *testing.T) {
	profile := Profile{
		Name:         `Ada <b>Lovelace</b>`,
		Headline:     "Engineer & writer",
		About:        "I build **engines**.\n\n<script>alert(1)</script>\n\n[site](javascript:alert(1))",
		ProjectTitle: "Analytical Engine",
		ProjectDesc:  "Notes on the engine",
		ProjectLink:  "https://example.com/engine",
		GitHub:       "https://github.com/ada",
		LinkedIn:     "javascript:alert(1)",
		Website:      "not a url",
	}
	req, err := NewRequest(testResume, LinkedVideo{EmbedURL: "https://www.youtube.com/embed/abc123"}, profile)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	doc, err := Synthesize(req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if strings.Contains(doc, "<b>Lovelace</b>") {
		t.Fatalf("name must be escaped")
	}
	if !strings.Contains(doc, "Ada &lt;b&gt;Lovelace&lt;/b&gt;") {
		t.Fatalf("expected escaped name in output")
	}
	if !strings.Contains(doc, "<strong>engines</strong>") {
		t.Fatalf("expected markdown to render")
	}
	if strings.Contains(doc, "javascript:") || strings.Contains(doc, "alert(1)</script>") {
		t.Fatalf("unsafe content leaked into output")
	}
	els := parseElements(t, doc)
	if countTag(els, "script") != 0 {
		t.Fatalf("microsite must not contain scripts")
	}
	hrefs := map[string]bool{}
	for _, e := range els {
		if e.tag == "a" {
			hrefs[e.attrs["href"]] = true
		}
	}
	for _, want := range []string{"https://github.com/ada", "https://example.com/engine"} {
		if !hrefs[want] {
			t.Fatalf("expected link %q, got %v", want, hrefs)
		}
	}
	if strings.Contains(doc, ">LinkedIn<") || strings.Contains(doc, ">Portfolio<") {
		t.Fatalf("invalid social links must be omitted")
	}
}

func TestNewRequestValidation(t *testing.T) {
	linked := LinkedVideo{EmbedURL: "https://www.youtube.com/embed/abc123"}

	if _, err := NewRequest(uploads.Attachment{}, linked, Profile{}); !errors.Is(err, ErrResumeRequired) {
		t.Fatalf("expected ErrResumeRequired, got %v", err)
	}
	if _, err := NewRequest(testVideo, linked, Profile{}); !errors.Is(err, ErrResumeRequired) {
		t.Fatalf("video attachment is not a resume, got %v", err)
	}
	if _, err := NewRequest(testResume, nil, Profile{}); !errors.Is(err, ErrVideoRequired) {
		t.Fatalf("expected ErrVideoRequired for nil video, got %v", err)
	}
	if _, err := NewRequest(testResume, LinkedVideo{EmbedURL: "  "}, Profile{}); !errors.Is(err, ErrVideoRequired) {
		t.Fatalf("expected ErrVideoRequired for blank embed, got %v", err)
	}
	if _, err := NewRequest(testResume, UploadedVideo{File: testResume}, Profile{}); !errors.Is(err, ErrVideoRequired) {
		t.Fatalf("expected ErrVideoRequired for non-video attachment, got %v", err)
	}
}

func TestWebLink(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://example.com":      "https://example.com",
		" http://example.com/a?b ": "http://example.com/a?b",
		"ftp://example.com":        "",
		"example.com":              "",
		"javascript:alert(1)":      "",
		"":                         "",
	}
	for in, want := range cases {
		if got := webLink(in); got != want {
			t.Fatalf("webLink(%q) = %q, want %q", in, got, want)
		}
	}
}
