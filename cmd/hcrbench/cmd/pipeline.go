package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Aman-CERP/hcr/internal/baseline"
	"github.com/Aman-CERP/hcr/internal/bm25index"
	"github.com/Aman-CERP/hcr/internal/cascade"
	"github.com/Aman-CERP/hcr/internal/config"
	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/denseindex"
	"github.com/Aman-CERP/hcr/internal/embedcache"
	"github.com/Aman-CERP/hcr/internal/embedder"
	"github.com/Aman-CERP/hcr/internal/harness"
	"github.com/Aman-CERP/hcr/internal/hybridindex"
	"github.com/Aman-CERP/hcr/internal/llmsummary"
	"github.com/Aman-CERP/hcr/internal/reranker"
	"github.com/Aman-CERP/hcr/internal/traversal"
	"github.com/Aman-CERP/hcr/internal/tree"
)

// pipeline is the shared immutable build every mode starts from: corpus,
// embedder, indexes, and the cross-encoder cache shared by the HCR cascade
// and the flat-CE baseline.
type pipeline struct {
	cfg    *config.Config
	corp   *corpus.Corpus
	emb    embedder.Embedder
	bm25   *bm25index.Index
	dense  *denseindex.Index
	hybrid *hybridindex.Index
	ce     *reranker.CachedCrossEncoder
}

// buildPipeline loads the corpus, embeds every chunk, and constructs the
// three indexes. The embedding and cross-encoder models are external
// collaborators; the harness runs with their deterministic offline stubs.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	chunks, err := harness.LoadChunks(cfg.Paths.Corpus)
	if err != nil {
		return nil, err
	}

	emb := embedcache.New(embedder.NewHashEmbedder(), cfg.Cache.EmbeddingSize)

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content()
	}
	vectors, err := emb.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}

	embeddings := make(map[string][]float32, len(chunks))
	for i, c := range chunks {
		embeddings[c.ID()] = vectors[i]
	}

	corp, err := corpus.New(chunks, embeddings)
	if err != nil {
		return nil, err
	}

	bm25 := bm25index.New(corp.Chunks())
	dense := denseindex.New(corp)
	hybrid := hybridindex.New(bm25, dense, cfg.Fusion.RRFConstant)
	ce := reranker.New(reranker.NewLexicalCrossEncoder(), cfg.Cache.CrossEncoderSize)

	slog.Info("pipeline_built", "chunks", corp.Len())

	return &pipeline{cfg: cfg, corp: corp, emb: emb, bm25: bm25, dense: dense, hybrid: hybrid, ce: ce}, nil
}

// treeCachePath is where a built tree is serialized for reuse across modes.
func (p *pipeline) treeCachePath() string {
	return filepath.Join(p.cfg.Paths.Results, "hcr_tree.json")
}

// buildOrLoadTree loads the cached tree document if present, otherwise
// clusters the corpus and generates routing summaries.
func (p *pipeline) buildOrLoadTree(ctx context.Context) (*tree.Tree, error) {
	cachePath := p.treeCachePath()
	if _, err := os.Stat(cachePath); err == nil {
		slog.Info("tree_cache_hit", "path", cachePath)
		return tree.LoadTree(cachePath)
	}

	slog.Info("tree_build_started",
		"depth", p.cfg.Tree.MaxDepth,
		"branching", p.cfg.Tree.Branching)

	summarizer := llmsummary.NewSummarizer(llmsummary.NewPatternGenerator())
	builder := tree.NewBuilder(p.emb, summarizer, p.cfg.Tree.Branching, p.cfg.Tree.MaxDepth)
	tr, err := builder.Build(ctx, p.corp)
	if err != nil {
		return nil, err
	}

	slog.Info("tree_build_finished", "nodes", len(tr.Nodes), "depth", tr.Depth)

	if err := os.MkdirAll(p.cfg.Paths.Results, 0o755); err == nil {
		if err := tr.Save(cachePath); err != nil {
			slog.Warn("tree_cache_write_failed", "path", cachePath, "error", err)
		}
	}

	return tr, nil
}

// newHCRBaseline wires the cascade, beam, collapsed, and dual-path
// components over a built tree.
func (p *pipeline) newHCRBaseline(tr *tree.Tree) *baseline.HCR {
	casc := cascade.New(p.ce, p.cfg.Cascade.PreFilterK, p.cfg.Cascade.FinalK)
	beam := traversal.NewBeamSearch(tr, p.corp, casc,
		p.cfg.Beam.BeamWidth, p.cfg.Beam.DiversityLambda, p.cfg.Cascade.Alpha)
	collapsed := traversal.NewCollapsed(tr, p.ce, 0)
	dualPath := traversal.NewDualPath(beam, collapsed)
	return baseline.NewHCR(p.corp, tr, dualPath, p.emb)
}

// newFlatCE wires the kill baseline over the shared cross-encoder cache.
func (p *pipeline) newFlatCE() *baseline.FlatCE {
	return baseline.NewFlatCE(p.corp, p.hybrid, p.emb, p.ce, 0)
}
