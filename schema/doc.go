// Package schema models the configuration surface of the pipeline's
// sources, transforms, and sinks. It turns one merged metadata document
// into a validated, cross-linked object graph (options, sections, guides,
// links) that rendering tools consume. Construction is fail-fast: the
// first authoring defect aborts the whole build.
package schema
