package render

// The page and index layouts. Styling is deliberately minimal; theming is
// out of scope and downstream consumers restyle with their own CSS.
const pageTemplate = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} &mdash; {{.Library.Name}} {{.Library.Version}}</title>
</head>
<body>
<header>
<nav><a href="index.html">{{.Library.Name}} {{.Library.Version}}</a></nav>
</header>
{{end}}

{{define "foot"}}<footer>
Generated by girdoc{{if .Library.WebsiteURL}} &middot; <a href="{{.Library.WebsiteURL}}">{{.Library.Name}} website</a>{{end}}
</footer>
</body>
</html>
{{end}}

{{define "page"}}{{template "head" .}}
<main>
<h1><code>{{.Namespace}}.{{.Title}}</code></h1>
{{if .CType}}<p class="ctype"><code>{{.CType}}</code></p>{{end}}
{{if .Deprecation}}<div class="deprecation">{{.Deprecation}}</div>{{end}}
{{with .Doc}}<div class="description">{{.}}</div>{{end}}
{{if .Ancestors}}
<section id="hierarchy">
<h2>Hierarchy</h2>
<ul>
{{range .Ancestors}}<li>{{if .Href}}<a href="{{.Href}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</li>
{{end}}</ul>
</section>
{{end}}
{{if .Implements}}
<section id="implements">
<h2>Implements</h2>
<ul>
{{range .Implements}}<li>{{if .Href}}<a href="{{.Href}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</li>
{{end}}</ul>
</section>
{{end}}
{{if .Members}}
<section id="members">
<h2>Members</h2>
<dl>
{{range .Members}}<dt id="member.{{.Name}}"><code>{{.Identifier}}</code>{{if .Value}} = {{.Value}}{{end}}</dt>
<dd>{{.Doc}}</dd>
{{end}}</dl>
</section>
{{end}}
{{range .Sections}}
<section id="{{.Anchor}}">
<h2>{{.Title}}</h2>
{{range .Items}}
<article id="{{.Anchor}}">
<h3>{{.Name}}</h3>
<pre><code>{{.Signature}}</code></pre>
{{if .Deprecation}}<div class="deprecation">{{.Deprecation}}</div>{{end}}
{{.Doc}}
</article>
{{end}}
</section>
{{end}}
</main>
{{template "foot" .}}{{end}}

{{define "tree"}}<ul>
{{range .}}<li>{{if .Href}}<a href="{{.Href}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}{{with .Children}}{{template "tree" .}}{{end}}</li>
{{end}}</ul>{{end}}

{{define "index"}}{{template "head" .}}
<main>
<h1>{{.Library.Name}} {{.Library.Version}}</h1>
{{if .Library.Description}}<p>{{.Library.Description}}</p>{{end}}
<p class="namespace"><code>{{.Namespace}}-{{.Version}}</code></p>
{{if .Hierarchy}}
<section id="hierarchy">
<h2>Class hierarchy</h2>
{{template "tree" .Hierarchy}}
</section>
{{end}}
{{range .Categories}}
<section>
<h2>{{.Title}}</h2>
<dl>
{{range .Items}}<dt><a href="{{.Href}}">{{.Name}}</a></dt>
<dd>{{.Summary}}</dd>
{{end}}</dl>
</section>
{{end}}
{{if .Dependencies}}
<section id="dependencies">
<h2>Dependencies</h2>
<dl>
{{range .Dependencies}}<dt>{{if .DocsURL}}<a href="{{.DocsURL}}">{{.Name}}</a>{{else}}{{.Name}}{{end}} <code>{{.Include}}</code></dt>
<dd>{{.Description}}</dd>
{{end}}</dl>
</section>
{{end}}
{{if .Library.Authors}}<p class="authors">{{.Library.Authors}}{{if .Library.License}} &middot; {{.Library.License}}{{end}}</p>{{end}}
</main>
{{template "foot" .}}{{end}}
`
