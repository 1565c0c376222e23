package physics

// DetectBroad appends every candidate pair of bodies to pairs and returns it.
// A pair qualifies when both bodies have a collider, the colliders share a
// layer, and at least one body is dynamic. The search is pairwise over bodies.
func DetectBroad(bodies []*RigidBody, pairs []Pair) []Pair {
	for i, a := range bodies {
		colliderA := a.Collider()
		if colliderA == nil {
			continue
		}

		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			colliderB := b.Collider()
			if colliderB == nil {
				continue
			}

			// Pairs without a mutual layer never collide
			if !colliderA.SharesLayer(colliderB) {
				continue
			}

			// Static bodies never collide with each other
			if a.IsStatic() && b.IsStatic() {
				continue
			}

			pairs = append(pairs, Pair{A: BodyHandle(i), B: BodyHandle(j)})
		}
	}
	return pairs
}
