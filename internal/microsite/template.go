package microsite

// Asset paths are relative so the page works under any public base URL.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body{margin:0;font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;background:#f5f6f8;color:#1d2330}
main{max-width:960px;margin:0 auto;padding:24px 16px 48px}
header h1{margin:0 0 4px;font-size:2rem}
header p{margin:0;color:#566074}
section{background:#fff;border-radius:12px;box-shadow:0 1px 3px rgba(0,0,0,.08);padding:20px;margin-top:20px}
section h2{margin-top:0;font-size:1.25rem}
.viewer{width:100%;height:640px;border:0;border-radius:8px;background:#eef0f3}
.video{width:100%;max-height:540px;border-radius:8px;background:#000}
.embed{position:relative;width:100%;padding-top:56.25%}
.embed iframe{position:absolute;inset:0;width:100%;height:100%;border:0;border-radius:8px}
.links a{margin-right:16px}
a{color:#2456d6}
</style>
</head>
<body>
<main>
{{- if or .Name .Headline}}
<header>
{{- if .Name}}
<h1>{{.Name}}</h1>
{{- end}}
{{- if .Headline}}
<p>{{.Headline}}</p>
{{- end}}
</header>
{{- end}}
{{- if .About}}
<section class="about">
<h2>About</h2>
{{.About}}
</section>
{{- end}}
<section class="resume">
<h2>Resume</h2>
<iframe class="viewer" src="{{.ResumePath}}" title="Resume"></iframe>
<p><a href="{{.ResumePath}}" target="_blank" rel="noopener">View Resume{{if .ResumeName}} ({{.ResumeName}}){{end}}</a></p>
</section>
<section class="video-section">
<h2>Intro Video</h2>
{{- if .EmbedURL}}
<div class="embed">
<iframe src="{{.EmbedURL}}" title="Intro video" allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe>
</div>
{{- else}}
<video class="video" controls preload="metadata">
<source src="{{.VideoPath}}" type="{{.VideoType}}">
<a href="{{.VideoPath}}">Download the intro video</a>
</video>
{{- end}}
</section>
{{- if .ProjectTitle}}
<section class="project">
<h2>{{.ProjectTitle}}</h2>
{{- if .ProjectDesc}}
<p>{{.ProjectDesc}}</p>
{{- end}}
{{- if .ProjectLink}}
<p><a href="{{.ProjectLink}}" target="_blank" rel="noopener">View project</a></p>
{{- end}}
</section>
{{- end}}
{{- if .Socials}}
<section class="links">
<h2>Links</h2>
{{- range .Socials}}
<a href="{{.URL}}" target="_blank" rel="noopener">{{.Label}}</a>
{{- end}}
</section>
{{- end}}
</main>
</body>
</html>
`
