package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aman-CERP/hcr/internal/clustering"
	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/denseindex"
	"github.com/Aman-CERP/hcr/internal/embedder"
	"github.com/Aman-CERP/hcr/internal/llmsummary"
)

// snippetMaxChars bounds the representative content sample attached to each
// routing summary.
const snippetMaxChars = 200

// Builder materializes a Tree from a corpus via hierarchical clustering and
// externally-generated routing summaries, mirroring the recursive
// cluster-to-node walk of the teacher's tree-building idiom generalized to
// the cluster/summary domain.
type Builder struct {
	embedder    embedder.Embedder
	summarizer  *llmsummary.Summarizer
	branching   int
	maxDepth    int
	nodeCounter int
}

// NewBuilder constructs a Builder. emb embeds canonical summary text;
// summarizer produces routing-summary fields for each internal node.
func NewBuilder(emb embedder.Embedder, summarizer *llmsummary.Summarizer, branching, maxDepth int) *Builder {
	return &Builder{embedder: emb, summarizer: summarizer, branching: branching, maxDepth: maxDepth}
}

// Build clusters corp's chunks hierarchically and recursively attaches
// routing summaries, producing the immutable Tree consumed by every
// traversal path.
func (b *Builder) Build(ctx context.Context, corp *corpus.Corpus) (*Tree, error) {
	b.nodeCounter = 0

	chunkIDs := corp.IDs()
	embeddings := make([][]float32, len(chunkIDs))
	for i, id := range chunkIDs {
		vec, _ := corp.Embedding(id)
		embeddings[i] = vec
	}

	clusterRoot := clustering.Build(chunkIDs, embeddings, b.branching, b.maxDepth)

	nodes := make(map[string]*Node)
	rootID, err := b.buildSubtree(ctx, clusterRoot, corp, nodes, 0)
	if err != nil {
		return nil, err
	}

	return New(rootID, nodes)
}

func (b *Builder) nextID(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, b.nodeCounter)
	b.nodeCounter++
	return id
}

func (b *Builder) buildSubtree(ctx context.Context, cn *clustering.Node, corp *corpus.Corpus, nodes map[string]*Node, level int) (string, error) {
	if cn.IsLeafCluster() {
		if len(cn.ChunkIDs) == 1 {
			leafID := b.nextID("leaf")
			leaf, err := NewLeafNode(leafID, level, cn.ChunkIDs[0])
			if err != nil {
				return "", err
			}
			nodes[leafID] = leaf
			return leafID, nil
		}

		branchID := b.nextID("branch")
		childIDs := make([]string, 0, len(cn.ChunkIDs))
		for _, chunkID := range cn.ChunkIDs {
			leafID := b.nextID("leaf")
			leaf, err := NewLeafNode(leafID, level+1, chunkID)
			if err != nil {
				return "", err
			}
			leaf.ParentIDs = []string{branchID}
			nodes[leafID] = leaf
			childIDs = append(childIDs, leafID)
		}

		summary, summaryEmb, err := b.summarizeCluster(ctx, cn.ChunkIDs, corp, nil)
		if err != nil {
			return "", err
		}

		branch, err := NewBranchNode(branchID, level, childIDs, summary, summaryEmb)
		if err != nil {
			return "", err
		}
		nodes[branchID] = branch
		return branchID, nil
	}

	branchID := b.nextID("branch")
	childTreeIDs := make([]string, 0, len(cn.Children))
	var siblingSummaries []*RoutingSummary

	for _, childCluster := range cn.Children {
		childID, err := b.buildSubtree(ctx, childCluster, corp, nodes, level+1)
		if err != nil {
			return "", err
		}
		childTreeIDs = append(childTreeIDs, childID)

		childNode := nodes[childID]
		childNode.ParentIDs = append(childNode.ParentIDs, branchID)
		if childNode.Summary != nil {
			siblingSummaries = append(siblingSummaries, childNode.Summary)
		}
	}

	summary, summaryEmb, err := b.summarizeCluster(ctx, cn.ChunkIDs, corp, siblingSummaries)
	if err != nil {
		return "", err
	}

	branch, err := NewBranchNode(branchID, level, childTreeIDs, summary, summaryEmb)
	if err != nil {
		return "", err
	}
	nodes[branchID] = branch
	return branchID, nil
}

func (b *Builder) summarizeCluster(ctx context.Context, chunkIDs []string, corp *corpus.Corpus, siblings []*RoutingSummary) (*RoutingSummary, []float32, error) {
	clusterTexts := make([]string, 0, len(chunkIDs))
	for _, id := range chunkIDs {
		if chunk, ok := corp.Chunk(id); ok {
			clusterTexts = append(clusterTexts, chunk.Content())
		}
	}

	siblingTexts := make([]string, len(siblings))
	for i, s := range siblings {
		siblingTexts[i] = s.CanonicalText()
	}

	result := b.summarizer.Summarize(ctx, strings.Join(clusterTexts, "\n"), siblingTexts)

	summary, err := NewRoutingSummary(
		result.Theme,
		result.Includes,
		result.Excludes,
		result.KeyEntities,
		result.KeyTerms,
		extractSnippet(clusterTexts, snippetMaxChars),
	)
	if err != nil {
		return nil, nil, err
	}

	vec, err := b.embedder.Embed(ctx, summary.CanonicalText())
	if err != nil {
		return nil, nil, err
	}

	return summary, denseindex.Normalize(vec), nil
}
