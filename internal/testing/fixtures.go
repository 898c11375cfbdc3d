package testing

// PageSkeleton is a skeleton without a table of contents
const PageSkeleton = `<!DOCTYPE html>
<html>
  <head><title>Docs</title></head>
  <body>
    <nav><ul>{{navbar}}</ul></nav>
    <main>{{article}}</main>
  </body>
</html>
`

// DocumentationSkeleton is a skeleton with a table of contents
const DocumentationSkeleton = `<!DOCTYPE html>
<html>
  <head><title>Docs</title></head>
  <body>
    <nav><ul>{{navbar}}</ul></nav>
    <div class="toc">{{toc}}</div>
    <main>{{article}}</main>
  </body>
</html>
`

// SampleSite returns a two-section site: a home page and a guide with one
// sub-page. The index page links into the guide.
func SampleSite() map[string]string {
	return map[string]string{
		"site.yaml": `sections:
  - name: Home
    template: page
    index: index
  - name: Guide
    template: documentation
    index: guide
    pages:
      - setup
`,
		"templates/page.html":          PageSkeleton,
		"templates/documentation.html": DocumentationSkeleton,
		"assets/style.css":             "body { margin: 0 }\n",
		"content/index.md":             "# Welcome\n\nSee the [setup](@setup#install).\n",
		"content/guide.md":             "# Guide\n\nStart with [setup](@setup).\n",
		"content/setup.md":             "# Setup\n\n## Install\n\nRun it.\n\n```shell\n$ docsite build\n```\n",
	}
}

// WithFiles returns a copy of site with files added or replaced
func WithFiles(site map[string]string, files map[string]string) map[string]string {
	out := make(map[string]string, len(site)+len(files))
	for name, content := range site {
		out[name] = content
	}
	for name, content := range files {
		out[name] = content
	}
	return out
}
