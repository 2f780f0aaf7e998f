package evalmetrics

import (
	"sort"

	"github.com/Aman-CERP/hcr/internal/evalquery"
	"github.com/Aman-CERP/hcr/internal/tree"
)

// EpsilonMeasurement is the per-level routing accuracy: the fraction of
// evaluated queries whose gold chunk's ancestor at this level missed the
// recorded beam. Lower is better; 0 is perfect routing.
type EpsilonMeasurement struct {
	Level               int     `json:"level"`
	QueriesEvaluated    int     `json:"queries_evaluated"`
	CorrectBranchInBeam int     `json:"correct_branch_in_beam"`
	Epsilon             float64 `json:"epsilon"`
}

// ComputeEpsilon measures routing accuracy per tree level. beamResults maps
// query ID to that query's recorded beam-per-level node IDs. A query counts
// as correct at a level when ANY of its gold chunks' ancestors at that level
// appears in the beam recorded for it.
func ComputeEpsilon(tr *tree.Tree, queries []*evalquery.Query, beamResults map[string]map[int][]string) []EpsilonMeasurement {
	levels := make(map[int]struct{})
	for _, perLevel := range beamResults {
		for level := range perLevel {
			levels[level] = struct{}{}
		}
	}
	sortedLevels := make([]int, 0, len(levels))
	for level := range levels {
		sortedLevels = append(sortedLevels, level)
	}
	sort.Ints(sortedLevels)

	leafByChunk := leafNodeByChunkID(tr)

	var measurements []EpsilonMeasurement
	for _, level := range sortedLevels {
		evaluated := 0
		correct := 0

		for _, q := range queries {
			perLevel, ok := beamResults[q.ID()]
			if !ok {
				continue
			}
			beam, ok := perLevel[level]
			if !ok {
				continue
			}
			evaluated++

			inBeam := make(map[string]struct{}, len(beam))
			for _, id := range beam {
				inBeam[id] = struct{}{}
			}

			for _, goldID := range q.GoldChunkIDs() {
				ancestor, ok := ancestorAtLevel(tr, leafByChunk, goldID, level)
				if !ok {
					continue
				}
				if _, hit := inBeam[ancestor]; hit {
					correct++
					break
				}
			}
		}

		if evaluated > 0 {
			measurements = append(measurements, EpsilonMeasurement{
				Level:               level,
				QueriesEvaluated:    evaluated,
				CorrectBranchInBeam: correct,
				Epsilon:             1.0 - float64(correct)/float64(evaluated),
			})
		}
	}

	return measurements
}

func leafNodeByChunkID(tr *tree.Tree) map[string]*tree.Node {
	byChunk := make(map[string]*tree.Node)
	for _, node := range tr.Nodes {
		if node.IsLeaf {
			byChunk[node.ChunkID] = node
		}
	}
	return byChunk
}

// ancestorAtLevel walks up from the chunk's leaf to the ancestor at
// targetLevel, following the first parent at each step (a build produces a
// pure tree, so exactly one).
func ancestorAtLevel(tr *tree.Tree, leafByChunk map[string]*tree.Node, chunkID string, targetLevel int) (string, bool) {
	current, ok := leafByChunk[chunkID]
	if !ok {
		return "", false
	}

	for current.Level > targetLevel {
		if len(current.ParentIDs) == 0 {
			return "", false
		}
		parent, ok := tr.Node(current.ParentIDs[0])
		if !ok {
			return "", false
		}
		current = parent
	}

	if current.Level == targetLevel {
		return current.ID, true
	}
	return "", false
}
