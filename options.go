package arangordf

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/ArangoDB-Community/ArangoRDF/mapper"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/transform"
)

// Option configures the Engine.
type Option func(*engineConfig)

// engineConfig holds configuration for an Engine instance.
type engineConfig struct {
	logger *slog.Logger
	tracer trace.Tracer
	mapper mapper.Mapper
	opts   transform.Options
}

// WithLogger sets a custom logger for the engine.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the transformation passes.
// If not provided, the global tracer provider is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *engineConfig) {
		c.tracer = tracer
	}
}

// WithMapper replaces the default collection mapper used by the PGT
// transformation.
func WithMapper(m mapper.Mapper) Option {
	return func(c *engineConfig) {
		c.mapper = m
	}
}

// WithContextualize enables domain/range type inference and the
// materialization of predicate documents during PGT runs.
func WithContextualize() Option {
	return func(c *engineConfig) {
		c.opts.Contextualize = true
	}
}

// WithOntology pre-loads ontology statements. They feed the taxonomy
// index and the contextualizer, and are transformed alongside the data
// when contextualization is enabled.
func WithOntology(stmts []rdf.Statement) Option {
	return func(c *engineConfig) {
		c.opts.Ontology = stmts
	}
}

// WithListConversion selects how array-valued properties convert back to
// RDF on export. Default transform.ListRepeatStatements.
func WithListConversion(mode transform.ListConversionMode) Option {
	return func(c *engineConfig) {
		c.opts.ListConversion = mode
	}
}

// WithDictConversion selects how object-valued properties convert back
// to RDF on export. Default transform.DictBlankNodeStructure.
func WithDictConversion(mode transform.DictConversionMode) Option {
	return func(c *engineConfig) {
		c.opts.DictConversion = mode
	}
}

// WithFallbackCollection sets the collection receiving resources with no
// type information during PGT runs.
func WithFallbackCollection(name string) Option {
	return func(c *engineConfig) {
		c.opts.FallbackCollection = name
	}
}

// WithNamespace sets the base IRI under which exported native records
// and property predicates are minted.
func WithNamespace(ns string) Option {
	return func(c *engineConfig) {
		c.opts.Namespace = ns
	}
}

// WithIncludeCollectionStatements adds an adb:collection statement per
// exported resource so a later import restores its placement.
func WithIncludeCollectionStatements() Option {
	return func(c *engineConfig) {
		c.opts.IncludeCollectionStatements = true
	}
}

// WithIncludeKeyStatements adds an adb:key statement per exported
// resource so a later import restores its key.
func WithIncludeKeyStatements() Option {
	return func(c *engineConfig) {
		c.opts.IncludeKeyStatements = true
	}
}

// WithReifyEdgeProperties reifies edges carrying attributes into
// statement resources on export instead of dropping the attributes.
func WithReifyEdgeProperties() Option {
	return func(c *engineConfig) {
		c.opts.ReifyEdgeProperties = true
	}
}

// WithSeed pre-pins collection assignments replayed from a previous
// run's report.
func WithSeed(seed map[string]mapper.Assignment) Option {
	return func(c *engineConfig) {
		c.opts.Seed = seed
	}
}
