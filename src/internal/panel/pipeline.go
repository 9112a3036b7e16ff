package panel

import (
	"context"
	"errors"
	"fmt"

	"certview/src/internal/citation"
	"certview/src/internal/metadata"
)

// loadRun carries values between stages of one Load.
type loadRun struct {
	meta       metadata.Metadata
	identifier string
	record     citation.Record
}

type stage struct {
	name string
	run  func(ctx context.Context, r *loadRun) error
}

// stages returns the load pipeline in order. Each stage fails with its own
// sentinel; citation.ErrIdentifierEmpty ends the pipeline without failing.
func (c *Controller) stages() []stage {
	return []stage{
		{name: "metadata", run: c.fetchMetadata},
		{name: "identifier", run: c.readIdentifier},
		{name: "engine", run: c.checkEngine},
		{name: "resolve", run: c.resolve},
		{name: "render", run: c.render},
	}
}

func (c *Controller) fetchMetadata(ctx context.Context, r *loadRun) error {
	if c.source == nil {
		return fmt.Errorf("%w: no metadata source", metadata.ErrMetadataUnavailable)
	}
	md, err := c.source.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, metadata.ErrMetadataUnavailable) {
			err = fmt.Errorf("%w: %v", metadata.ErrMetadataUnavailable, err)
		}
		return err
	}
	r.meta = md
	return nil
}

func (c *Controller) readIdentifier(_ context.Context, r *loadRun) error {
	r.identifier = r.meta.ReportID()
	if r.identifier == "" {
		return citation.ErrIdentifierEmpty
	}
	c.mu.Lock()
	c.identifier = r.identifier
	c.mu.Unlock()
	c.logger.Info("loading citation", "identifier", r.identifier)
	return nil
}

func (c *Controller) checkEngine(context.Context, *loadRun) error {
	if c.service == nil || !c.service.Available() {
		return citation.ErrEngineUnavailable
	}
	return nil
}

func (c *Controller) resolve(ctx context.Context, r *loadRun) error {
	c.mu.Lock()
	c.state = Loading
	c.mu.Unlock()
	rec, err := c.service.Resolve(ctx, r.identifier)
	if err != nil {
		if !errors.Is(err, citation.ErrResolutionFailed) {
			err = fmt.Errorf("%w: %v", citation.ErrResolutionFailed, err)
		}
		return err
	}
	r.record = rec
	return nil
}

func (c *Controller) render(_ context.Context, r *loadRun) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record = r.record
	c.style = citation.DefaultStyle
	text, err := c.format(citation.DefaultStyle)
	if err != nil {
		return err
	}
	c.rendered = text
	c.state = Ready
	c.logger.Info("citation ready", "identifier", r.identifier, "style", c.style)
	c.display.SetPreview(text)
	return nil
}
