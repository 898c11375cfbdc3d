package tui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/user/docsite/internal/validation"
)

// SimpleProgress prints one line per step.
type SimpleProgress struct {
	writer  io.Writer
	title   string
	started bool
}

func NewSimpleProgress(title string) *SimpleProgress {
	return &SimpleProgress{
		title: title,
	}
}

func (sp *SimpleProgress) SetWriter(w io.Writer) {
	sp.writer = w
}

func (sp *SimpleProgress) getWriter() io.Writer {
	if sp.writer == nil {
		return os.Stdout
	}
	return sp.writer
}

func (sp *SimpleProgress) Start() {
	if sp.started {
		return
	}
	sp.started = true
	_, _ = fmt.Fprintln(sp.getWriter())
	_, _ = fmt.Fprintln(sp.getWriter(), StyleTitle.Render(" "+sp.title+" "))
	_, _ = fmt.Fprintln(sp.getWriter())
}

func (sp *SimpleProgress) Step(message string) {
	_, _ = fmt.Fprintf(sp.getWriter(), "%s %s\n",
		StyleStep.Render(IconStep),
		message)
}

func (sp *SimpleProgress) Success(message string) {
	_, _ = fmt.Fprintf(sp.getWriter(), "%s %s\n",
		StyleSuccess.Render(IconSuccess),
		StyleSuccess.Render(message))
}

func (sp *SimpleProgress) Error(message string) {
	_, _ = fmt.Fprintf(sp.getWriter(), "%s %s\n",
		StyleError.Render(IconError),
		StyleError.Render(message))
}

func (sp *SimpleProgress) Warning(message string) {
	_, _ = fmt.Fprintf(sp.getWriter(), "%s %s\n",
		StyleWarning.Render(IconWarning),
		message)
}

func (sp *SimpleProgress) Info(message string) {
	_, _ = fmt.Fprintf(sp.getWriter(), "  %s\n",
		StyleMuted.Render(message))
}

func (sp *SimpleProgress) Done() {
	_, _ = fmt.Fprintln(sp.getWriter())
}

func (sp *SimpleProgress) Failed(err error) {
	_, _ = fmt.Fprintln(sp.getWriter())
	if err != nil {
		_, _ = fmt.Fprintf(sp.getWriter(), "%s %s\n",
			StyleError.Render(IconError+" Failed:"),
			err.Error())
	} else {
		_, _ = fmt.Fprintf(sp.getWriter(), "%s\n",
			StyleError.Render(IconError+" Failed"))
	}
}

// BuildProgress reports a site build as it advances. It satisfies both the
// site builder's and the output writer's observer interfaces.
type BuildProgress struct {
	*SimpleProgress

	mu        sync.Mutex
	sections  int
	pages     int
	files     int
	bytes     int64
	startTime time.Time
}

func NewBuildProgress(title string) *BuildProgress {
	return &BuildProgress{
		SimpleProgress: NewSimpleProgress(title),
		startTime:      time.Now(),
	}
}

func (bp *BuildProgress) SectionStarted(name string, pages int) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.sections++
	if name == "" {
		name = "(unnamed)"
	}
	bp.Step(fmt.Sprintf("%s %s",
		StyleSection.Render(name),
		StyleMuted.Render(fmt.Sprintf("%d %s", pages, plural(pages, "page")))))
}

func (bp *BuildProgress) PageAssembled(page string) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.pages++
	bp.Info(IconBullet + " " + page)
}

func (bp *BuildProgress) LinksChecked(result *validation.Result) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	summary := fmt.Sprintf("%d %s checked", result.Links, plural(result.Links, "link"))
	if result.Remote > 0 {
		summary += fmt.Sprintf(", %d remote", result.Remote)
	}
	if result.IsValid() {
		bp.Success(summary)
	} else {
		bp.Error(fmt.Sprintf("%s, %d broken", summary, len(result.Issues)))
	}
	for url, location := range result.Redirects {
		bp.Warning(fmt.Sprintf("%s %s %s", url, IconArrow, location))
	}
}

func (bp *BuildProgress) FileWritten(name string, size int64) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.files++
	bp.bytes += size
}

// Finish prints the totals of a successful build.
func (bp *BuildProgress) Finish(outputDir string) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	elapsed := time.Since(bp.startTime).Round(time.Millisecond)
	bp.Success(fmt.Sprintf("Wrote %d %s (%s) to %s in %s",
		bp.files, plural(bp.files, "file"),
		humanize.Bytes(uint64(bp.bytes)), outputDir, elapsed))
	bp.Done()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
