package newman

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-newman/internal/assets"
	"github.com/alnah/go-newman/internal/fileutil"
	"github.com/alnah/go-newman/internal/logging"
	"github.com/alnah/go-newman/internal/media"
)

// Default project layout.
const (
	DefaultSourceDir = "src"
	DefaultMediaDir  = "media"
	DefaultMaster    = "main.tex"
	DefaultSentinel  = "% Main content"
)

// Fragment files written by a previous update of a part.
var fragmentName = regexp.MustCompile(`^[0-9]{3}\.tex$`)

// Layout names the parts of a project tree, relative to its root.
type Layout struct {
	SourceDir string // fragments, one directory per part
	MediaDir  string // images, one directory per part
	Master    string // document receiving the \input lines
	Sentinel  string // line after which inputs are inserted
}

// DefaultLayout returns the layout of the built-in template.
func DefaultLayout() Layout {
	return Layout{
		SourceDir: DefaultSourceDir,
		MediaDir:  DefaultMediaDir,
		Master:    DefaultMaster,
		Sentinel:  DefaultSentinel,
	}
}

// TemplateLoader provides the tree copied into a new project.
type TemplateLoader interface {
	Template() (fs.FS, error)
}

// NewTemplateLoader returns the built-in template for an empty path, or a
// loader reading the template directory at path.
func NewTemplateLoader(path string) (TemplateLoader, error) {
	return assets.NewLoader(path)
}

// PartReport describes the outcome of one part update.
type PartReport struct {
	Part      string
	Source    string
	Fragments []string // paths relative to the project root, slash separated
	Media     []string // extracted image names
	Inserted  bool     // false when the master has no sentinel line
	Err       error
}

// Project is a LaTeX tree with a master document.
type Project struct {
	root   string
	layout Layout
	conv   *Converter
	logger *logging.Logger
	mu     sync.Mutex // serializes master rewrites
}

// ProjectOption configures a Project.
type ProjectOption func(*Project)

// WithLayout overrides the default project layout.
func WithLayout(l Layout) ProjectOption {
	return func(p *Project) {
		p.layout = l
	}
}

// WithConverter sets the converter used by part updates.
func WithConverter(c *Converter) ProjectOption {
	return func(p *Project) {
		p.conv = c
	}
}

// WithLogger reports part updates to l. A nil logger discards reports.
func WithLogger(l *log.Logger) ProjectOption {
	return func(p *Project) {
		if l != nil {
			p.logger = &logging.Logger{Logger: l}
		}
	}
}

// CreateProject copies the template into root and opens the new project.
// root must not exist or be an empty directory. A nil loader selects the
// built-in template. The template must contain the master document with its
// sentinel line.
func CreateProject(root string, loader TemplateLoader, opts ...ProjectOption) (*Project, error) {
	if err := checkEmptyDir(root); err != nil {
		return nil, err
	}

	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	fsys, err := loader.Template()
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}

	p := newProject(root, opts)
	if err := assets.Validate(fsys, p.layout.Master, p.layout.Sentinel); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	if _, err := assets.Copy(fsys, root); err != nil {
		return nil, fmt.Errorf("copying template: %w", err)
	}
	for _, dir := range []string{p.layout.SourceDir, p.layout.MediaDir} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o750); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	return OpenProject(root, opts...)
}

// OpenProject opens an existing project. The master document must exist.
func OpenProject(root string, opts ...ProjectOption) (*Project, error) {
	p := newProject(root, opts)

	if !fileutil.FileExists(p.masterPath()) {
		return nil, fmt.Errorf("%w: %s", ErrMasterNotFound, p.masterPath())
	}

	if p.conv == nil {
		conv, err := NewConverter()
		if err != nil {
			return nil, err
		}
		p.conv = conv
	}
	return p, nil
}

func newProject(root string, opts []ProjectOption) *Project {
	p := &Project{
		root:   root,
		layout: DefaultLayout(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Root returns the project directory.
func (p *Project) Root() string {
	return p.root
}

// Layout returns the project layout.
func (p *Project) Layout() Layout {
	return p.layout
}

// UpdatePart converts one DOCX file into fragments, extracts its images and
// inserts the fragment inputs into the master. The returned report is never
// nil.
func (p *Project) UpdatePart(ctx context.Context, docxPath string) (*PartReport, error) {
	report := p.writePart(ctx, docxPath)
	if report.Err == nil {
		p.insertPart(report)
	}
	return report, report.Err
}

// UpdateParts updates several parts with up to workers concurrent
// conversions (0 picks a value from GOMAXPROCS). Master insertions run after
// every conversion, in the order of paths. Reports are in the same order.
func (p *Project) UpdateParts(ctx context.Context, paths []string, workers int) []PartReport {
	reports := make([]PartReport, len(paths))

	// Two documents with the same stem would write the same directory
	seen := make(map[string]int, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup

	n := min(ResolveWorkers(workers), max(len(paths), 1))
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = *p.writePart(ctx, paths[i])
			}
		}()
	}

	for i, docxPath := range paths {
		part := fileutil.Stem(docxPath)
		if first, dup := seen[part]; dup {
			reports[i] = PartReport{
				Part:   part,
				Source: docxPath,
				Err:    fmt.Errorf("%w: %q also given by %s", ErrInvalidPartName, part, paths[first]),
			}
			continue
		}
		seen[part] = i
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i := range reports {
		if reports[i].Err == nil {
			p.insertPart(&reports[i])
		}
	}
	return reports
}

// writePart runs every step of an update except the master insertion.
func (p *Project) writePart(ctx context.Context, docxPath string) *PartReport {
	part := fileutil.Stem(docxPath)
	report := &PartReport{Part: part, Source: docxPath}
	fail := func(err error) *PartReport {
		report.Err = err
		p.logger.PartFailed(part, err)
		return report
	}

	p.logger.PartStarted(part, docxPath)

	result, err := p.conv.ConvertFile(ctx, docxPath)
	if err != nil {
		return fail(err)
	}

	partDir := filepath.Join(p.root, filepath.FromSlash(p.layout.SourceDir), part)
	if err := os.MkdirAll(partDir, 0o750); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteFragment, err))
	}
	if err := removeStaleFragments(partDir); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteFragment, err))
	}

	for _, a := range result.Articles {
		dst := filepath.Join(partDir, a.FileName())
		if err := fileutil.WriteFileAtomic(dst, []byte(a.Body), 0o644); err != nil {
			return fail(fmt.Errorf("%w: %w", ErrWriteFragment, err))
		}
		report.Fragments = append(report.Fragments, path.Join(p.layout.SourceDir, part, a.FileName()))
	}
	p.logger.ArticlesWritten(part, len(result.Articles), partDir)

	if err := copySource(docxPath, filepath.Join(partDir, filepath.Base(docxPath))); err != nil {
		return fail(err)
	}

	mediaDir := filepath.Join(p.root, filepath.FromSlash(p.layout.MediaDir), part)
	names, err := media.Extract(docxPath, mediaDir)
	if err != nil {
		return fail(fmt.Errorf("extracting media: %w", err))
	}
	report.Media = names
	p.logger.MediaExtracted(part, len(names), mediaDir)

	return report
}

// insertPart adds the inputs of report to the master. When the master
// already includes the part, its input lines are replaced in place by the
// new ordered list; otherwise they go after the inputs below the sentinel.
func (p *Project) insertPart(report *PartReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.masterPath()) // #nosec G304 -- project path
	if err != nil {
		report.Err = fmt.Errorf("%w: %w", ErrMasterNotFound, err)
		p.logger.PartFailed(report.Part, report.Err)
		return
	}

	lines := make([]string, len(report.Fragments))
	for i, frag := range report.Fragments {
		lines[i] = `\input{` + frag + `}`
	}

	doc := string(data)
	if sentinelLine(strings.SplitAfter(doc, "\n"), p.layout.Sentinel) < 0 {
		p.logger.SentinelMissing(p.masterPath(), p.layout.Sentinel)
		return
	}
	report.Inserted = true

	updated, replaced := replaceInputs(doc, path.Join(p.layout.SourceDir, report.Part), lines)
	if !replaced {
		updated, _ = InsertInputs(doc, p.layout.Sentinel, lines)
	}
	if updated == doc {
		return
	}
	if err := fileutil.WriteFileAtomic(p.masterPath(), []byte(updated), 0o644); err != nil {
		report.Err = fmt.Errorf("updating master: %w", err)
		p.logger.PartFailed(report.Part, report.Err)
	}
}

func (p *Project) masterPath() string {
	return filepath.Join(p.root, filepath.FromSlash(p.layout.Master))
}

// InsertInputs inserts lines, one per line, after the first line of master
// whose trimmed form equals sentinel and the run of \input lines directly
// below it, so successive calls keep their order. Lines already present in
// master are skipped. It reports false, with master unchanged, when no line
// matches the sentinel.
func InsertInputs(master, sentinel string, lines []string) (string, bool) {
	docLines := strings.SplitAfter(master, "\n")

	at := sentinelLine(docLines, sentinel)
	if at < 0 {
		return master, false
	}
	for at+1 < len(docLines) && isInputLine(docLines[at+1]) {
		at++
	}

	present := make(map[string]bool, len(docLines))
	for _, l := range docLines {
		present[strings.TrimSpace(l)] = true
	}
	var add []string
	for _, l := range lines {
		if !present[l] {
			present[l] = true
			add = append(add, l)
		}
	}
	return spliceLines(docLines, at+1, add), true
}

// replaceInputs removes every \input line below dir and puts lines where
// the first of them was. It reports false, with master unchanged, when
// master has no input below dir.
func replaceInputs(master, dir string, lines []string) (string, bool) {
	prefix := `\input{` + dir + "/"
	docLines := strings.SplitAfter(master, "\n")

	first := -1
	kept := make([]string, 0, len(docLines))
	for _, l := range docLines {
		if strings.HasPrefix(strings.TrimSpace(l), prefix) {
			if first < 0 {
				first = len(kept)
			}
			continue
		}
		kept = append(kept, l)
	}
	if first < 0 {
		return master, false
	}
	return spliceLines(kept, first, lines), true
}

// spliceLines joins docLines with lines inserted before index at. A line
// preceding the insertion point without a trailing newline gets one.
func spliceLines(docLines []string, at int, lines []string) string {
	var b strings.Builder
	for _, l := range docLines[:at] {
		b.WriteString(l)
	}
	if len(lines) > 0 && at > 0 && !strings.HasSuffix(docLines[at-1], "\n") {
		b.WriteString("\n")
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	for _, l := range docLines[at:] {
		b.WriteString(l)
	}
	return b.String()
}

func sentinelLine(docLines []string, sentinel string) int {
	for i, l := range docLines {
		if strings.TrimSpace(l) == sentinel {
			return i
		}
	}
	return -1
}

func isInputLine(l string) bool {
	return strings.HasPrefix(strings.TrimSpace(l), `\input{`)
}

// removeStaleFragments deletes NNN.tex files left by a previous update.
func removeStaleFragments(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Type().IsRegular() && fragmentName.MatchString(e.Name()) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// copySource keeps a copy of the document next to its fragments.
func copySource(src, dst string) error {
	absSrc, err1 := filepath.Abs(src)
	absDst, err2 := filepath.Abs(dst)
	if err1 == nil && err2 == nil && absSrc == absDst {
		return nil
	}
	if err := fileutil.CopyFile(src, dst); err != nil {
		return fmt.Errorf("copying source: %w", err)
	}
	return nil
}

// checkEmptyDir accepts a missing path or an empty directory.
func checkEmptyDir(root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is a file", ErrProjectExists, root)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("checking %s: %w", root, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrProjectExists, root)
	}
	return nil
}
