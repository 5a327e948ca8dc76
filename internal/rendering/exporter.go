package rendering

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
)

// Artifact is a finished export ready for download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter produces artifacts in every format. Only one paged export may run
// at a time; a second request while one is in flight fails with
// ErrExportInProgress instead of queueing.
type Exporter struct {
	rasterizer Rasterizer
	measurer   Measurer
	logger     logrus.FieldLogger
	busy       atomic.Bool
}

// NewExporter creates an exporter. rasterizer may be nil, in which case PDF
// exports fail.
func NewExporter(rasterizer Rasterizer, logger logrus.FieldLogger) *Exporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Exporter{rasterizer: rasterizer, measurer: HelveticaMetrics{}, logger: logger}
}

// Busy reports whether a paged export is running.
func (e *Exporter) Busy() bool {
	return e.busy.Load()
}

// Export renders one document in one format. The documents are not modified.
func (e *Exporter) Export(ctx context.Context, docs types.Documents, kind types.DocumentKind, format Format, opts Options) (*Artifact, error) {
	name := docs.Resume.PersonalInfo.Name
	if kind == types.KindCoverLetter {
		name = docs.CoverLetter.PersonalInfo.Name
	}
	artifact := &Artifact{
		Filename:    Filename(name, kind, format),
		ContentType: format.ContentType(),
	}

	log := e.logger.WithFields(logrus.Fields{
		"document": string(kind),
		"format":   string(format),
	})

	switch format {
	case FormatHTML:
		out, err := RenderHTML(docs, kind, opts)
		if err != nil {
			return nil, e.fail(log, format, "failed to render HTML", err)
		}
		artifact.Data = []byte(out)

	case FormatWord:
		out, err := RenderWord(docs, kind, opts)
		if err != nil {
			return nil, e.fail(log, format, "failed to render Word document", err)
		}
		artifact.Data = []byte(out)

	case FormatText:
		artifact.Data = []byte(RenderText(docs, kind))

	case FormatPDF:
		data, err := e.exportPDF(ctx, docs, kind)
		if err != nil {
			if errors.Is(err, ErrExportInProgress) {
				return nil, err
			}
			return nil, e.fail(log, format, "failed to generate PDF", err)
		}
		artifact.Data = data

	default:
		return nil, &ExportError{Format: format, Message: "unsupported format"}
	}

	log.WithField("bytes", len(artifact.Data)).Info("export complete")
	return artifact, nil
}

func (e *Exporter) exportPDF(ctx context.Context, docs types.Documents, kind types.DocumentKind) ([]byte, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer e.busy.Store(false)

	if e.rasterizer == nil {
		return nil, &RenderError{Message: "no PDF rasterizer configured"}
	}

	pages := Paginate(docs, kind, e.measurer)
	return e.rasterizer.Rasterize(ctx, pages, A4, DocumentTitle(docs, kind))
}

func (e *Exporter) fail(log logrus.FieldLogger, format Format, msg string, err error) error {
	log.WithError(err).Error(msg)
	return &ExportError{Format: format, Message: msg, Cause: err}
}
