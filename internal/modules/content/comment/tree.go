package comment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChildFinder returns the direct children of a set of comments.
type ChildFinder interface {
	ChildIDs(ctx context.Context, parents []primitive.ObjectID) ([]primitive.ObjectID, error)
}

// Subtree is the id set of a comment and all of its descendants.
type Subtree struct {
	IDs        []primitive.ObjectID
	RoundTrips int
}

// CollectSubtree walks the reply tree below root one level per store query.
// The root itself is always part of the result, even if it does not exist.
// Ids already seen are skipped, so malformed cyclic data terminates.
func CollectSubtree(ctx context.Context, finder ChildFinder, root primitive.ObjectID) (*Subtree, error) {
	seen := map[primitive.ObjectID]struct{}{root: {}}
	ids := []primitive.ObjectID{root}
	frontier := []primitive.ObjectID{root}
	trips := 0

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		children, err := finder.ChildIDs(ctx, frontier)
		trips++
		if err != nil {
			return nil, err
		}

		var next []primitive.ObjectID
		for _, id := range children {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
			next = append(next, id)
		}
		frontier = next
	}

	return &Subtree{IDs: ids, RoundTrips: trips}, nil
}
