package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/config"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/pkg/logger"
)

// DocumentMimeType is the fixed MIME type of every generated artifact.
const DocumentMimeType = "application/pdf"

// minEncodedChars is the floor for the transport encoding length; anything
// shorter than this cannot be a real multi-section document.
const minEncodedChars = 1000

// Envelope is the transport result of one pipeline run: the text-safe
// encoding of the binary, its derived filename, and the MIME type.
type Envelope struct {
	BinaryText string `json:"binaryText"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
}

// Pipeline runs the document generation stages in a fixed linear order:
// normalize, sanitize, render, validate, name, encode. It holds no state
// between requests and is safe for concurrent use.
type Pipeline struct {
	cfg       config.DocumentConfig
	sanitizer *Sanitizer
	renderer  Renderer
}

func NewPipeline(cfg config.DocumentConfig) *Pipeline {
	if cfg.MinPDFBytes <= 0 {
		cfg.MinPDFBytes = 1000
	}
	return &Pipeline{
		cfg:       cfg,
		sanitizer: NewSanitizer(cfg.MaxImageBytes),
		renderer:  NewDocumentRenderer(),
	}
}

// Generate runs the whole pipeline for one submission. tenant may be empty;
// the normalizer then infers the portal from the payload. now is the
// generation instant used for artifact naming, passed in so naming stays
// deterministic under test. Any fatal stage error aborts the request; there
// are no retries and no partial results.
func (p *Pipeline) Generate(ctx context.Context, payload map[string]any, tenant string, now time.Time) (*Envelope, error) {
	order := NormalizeSubmission(payload, tenant)
	clean := p.sanitizer.Sanitize(ctx, order)

	logger.Debug(ctx, "rendering work-order document",
		"tenant", clean.ServiceType,
		"photo_pairs", len(clean.WorkPhotos),
	)

	pdf, err := p.renderer.Render(ctx, clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	if err := p.validate(pdf); err != nil {
		return nil, err
	}

	filename := ArtifactFilename(clean.RequesterName, now)

	encoded := base64.StdEncoding.EncodeToString(pdf)
	if len(encoded) < minEncodedChars {
		return nil, fmt.Errorf("%w: encoded length %d below minimum %d",
			ErrEncodingFailure, len(encoded), minEncodedChars)
	}

	logger.Info(ctx, "work-order document generated",
		"tenant", clean.ServiceType,
		"filename", filename,
		"size_bytes", len(pdf),
	)

	return &Envelope{
		BinaryText: encoded,
		Filename:   filename,
		MimeType:   DocumentMimeType,
	}, nil
}

// validate is the single hard gate in the pipeline: the binary must clear
// the minimum plausible size and parse as a well-formed document. A partial
// render is never salvaged.
func (p *Pipeline) validate(pdf []byte) error {
	if len(pdf) < p.cfg.MinPDFBytes {
		return fmt.Errorf("%w: %d bytes, minimum %d", ErrIntegrityFailure, len(pdf), p.cfg.MinPDFBytes)
	}
	if err := api.Validate(bytes.NewReader(pdf), nil); err != nil {
		return fmt.Errorf("%w: %v", ErrIntegrityFailure, err)
	}
	return nil
}
