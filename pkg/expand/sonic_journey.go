package expand

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

const (
	pathMaxDepth = 4
	pathWidth    = 15
	pathMaxNodes = 1300
)

// findSonicPath breadth-first searches the sonic-similarity graph for a
// route from start to end, capped at pathMaxDepth hops, pathWidth
// neighbors explored per node, and pathMaxNodes nodes visited in total.
// Returns nil if no route is found within budget.
func findSonicPath(ctx context.Context, client library.Client, start, end models.Track) []models.Track {
	type pathState struct {
		path []models.Track
	}

	visited := map[string]bool{start.ID: true}
	queue := []pathState{{path: []models.Track{start}}}
	nodesVisited := 1

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if len(current.path) > pathMaxDepth {
			continue
		}

		last := current.path[len(current.path)-1]
		neighbors, err := client.SonicSimilarTracks(ctx, last.ID, pathWidth)
		if err != nil {
			continue
		}

		for _, n := range neighbors {
			if nodesVisited >= pathMaxNodes {
				return nil
			}
			if n.ID == end.ID {
				return append(append([]models.Track{}, current.path...), end)
			}
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			nodesVisited++
			queue = append(queue, pathState{path: append(append([]models.Track{}, current.path...), n)})
		}
	}

	return nil
}

// inflatePath fleshes out a sparse waypoint path with extra tracks
// sourced from each waypoint's own sonic neighborhood, spreading the
// needed count evenly (plus a small cushion) across waypoints.
func inflatePath(ctx context.Context, client library.Client, path []models.Track, needed int) []models.Track {
	if len(path) == 0 {
		return nil
	}
	perNode := needed/len(path) + 2

	seen := make(map[string]bool, len(path))
	out := make([]models.Track, 0, needed+len(path))
	for _, t := range path {
		seen[t.ID] = true
		out = append(out, t)
	}

	for _, node := range path {
		neighbors, err := client.SonicSimilarTracks(ctx, node.ID, perNode+5)
		if err != nil {
			continue
		}
		taken := 0
		for _, n := range neighbors {
			if taken >= perNode {
				break
			}
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			out = append(out, n)
			taken++
		}
	}

	return out
}

// ExpandSonicJourney stitches together a sonic-similarity path across
// every consecutive pair of seeds, falling back to a direct bridge of
// each endpoint's own neighbors when no path is found within budget.
// Order is preserved end to end; the duplicate waypoint between
// consecutive legs is dropped when stitching.
func ExpandSonicJourney(ctx context.Context, client library.Client, seeds []models.Track, targetCount int) ([]models.Track, error) {
	if len(seeds) < 2 {
		return seeds, nil
	}

	legs := len(seeds) - 1
	perLegTarget := targetCount / legs
	if perLegTarget < 5 {
		perLegTarget = 5
	}

	var journey []models.Track
	seen := make(map[string]bool)

	appendSegment := func(segment []models.Track) {
		for _, t := range segment {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			journey = append(journey, t)
		}
	}

	for i := 0; i < legs; i++ {
		start, end := seeds[i], seeds[i+1]

		path := findSonicPath(ctx, client, start, end)
		if path != nil {
			appendSegment(inflatePath(ctx, client, path, perLegTarget))
			continue
		}

		half := perLegTarget/2 + 2
		bridgeA, _ := client.SonicSimilarTracks(ctx, start.ID, half)
		bridgeB, _ := client.SonicSimilarTracks(ctx, end.ID, half)

		segment := make([]models.Track, 0, len(bridgeA)+len(bridgeB)+2)
		segment = append(segment, start)
		segment = append(segment, bridgeA...)
		segment = append(segment, bridgeB...)
		segment = append(segment, end)
		appendSegment(segment)
	}

	return journey, nil
}
