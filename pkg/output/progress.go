package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress renders a terminal progress bar over the files a sync run
// will visit. The total comes from a preliminary dry-run pass; the bar
// advances once per file decided (copied or skipped).
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress creates a progress observer for totalFiles files
func NewProgress(totalFiles int) *Progress {
	bar := pb.New(totalFiles)
	bar.Set(pb.CleanOnFinish, true)
	bar.Start()
	return &Progress{bar: bar}
}

// NewProgressTo creates a progress observer writing to w, for tests
func NewProgressTo(w io.Writer, totalFiles int) *Progress {
	bar := pb.New(totalFiles)
	bar.SetWriter(w)
	bar.Start()
	return &Progress{bar: bar}
}

// FileCopied advances the bar
func (p *Progress) FileCopied(path string) {
	p.bar.Increment()
}

// FileSkipped advances the bar
func (p *Progress) FileSkipped(path string) {
	p.bar.Increment()
}

// DirCreated does not advance the bar; directories are not part of the
// file total
func (p *Progress) DirCreated(path string) {}

// Finish stops the bar and clears it from the terminal
func (p *Progress) Finish() {
	p.bar.Finish()
}
