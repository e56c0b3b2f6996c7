package microsite

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

const defaultTitle = "My Portfolio"

var pageTemplate = template.Must(template.New("microsite").Parse(pageHTML))

type socialLink struct {
	Label string
	URL   string
}

type pageData struct {
	Title        string
	Name         string
	Headline     string
	About        template.HTML
	ProjectTitle string
	ProjectDesc  string
	ProjectLink  string
	Socials      []socialLink
	ResumePath   string
	ResumeName   string
	VideoPath    string
	VideoType    string
	EmbedURL     string
}

// Synthesize renders the standalone microsite for req. It performs no I/O
// and returns the same document for the same request.
func Synthesize(req Request) (string, error) {
	data := pageData{
		Title:        defaultTitle,
		Name:         strings.TrimSpace(req.Profile.Name),
		Headline:     strings.TrimSpace(req.Profile.Headline),
		ProjectTitle: strings.TrimSpace(req.Profile.ProjectTitle),
		ProjectDesc:  strings.TrimSpace(req.Profile.ProjectDesc),
		ProjectLink:  webLink(req.Profile.ProjectLink),
		ResumePath:   req.Resume.Path,
		ResumeName:   req.Resume.OriginalName,
	}
	if data.Name != "" {
		data.Title = data.Name
	}

	about, err := renderAbout(req.Profile.About)
	if err != nil {
		return "", fmt.Errorf("render about: %w", err)
	}
	data.About = about

	for _, s := range []socialLink{
		{Label: "GitHub", URL: req.Profile.GitHub},
		{Label: "LinkedIn", URL: req.Profile.LinkedIn},
		{Label: "Portfolio", URL: req.Profile.Website},
	} {
		if link := webLink(s.URL); link != "" {
			data.Socials = append(data.Socials, socialLink{Label: s.Label, URL: link})
		}
	}

	switch v := req.Video.(type) {
	case UploadedVideo:
		data.VideoPath = v.File.Path
		data.VideoType = v.File.MimeType
	case LinkedVideo:
		data.EmbedURL = v.EmbedURL
	default:
		return "", ErrVideoRequired
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render microsite: %w", err)
	}
	return buf.String(), nil
}

// webLink returns raw if it is an absolute http(s) URL, otherwise "".
func webLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
