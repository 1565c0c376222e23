package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BodyHandle indexes the body slice a step operates on. Handles are only
// valid for the step in which they were produced.
type BodyHandle int

// Pair is a broad phase candidate. A precedes B in iteration order.
type Pair struct {
	A, B BodyHandle
}

// Contact is a single point of a collision manifold.
type Contact struct {
	// Point is the world-space contact point.
	Point rl.Vector3
	// Normal is the world-space unit normal, pointing from body A toward body B.
	Normal rl.Vector3
	// Depth is the non-negative penetration depth.
	Depth float32
}

// MaxContacts is the capacity of a manifold. Plane-box is the only routine that fills it.
const MaxContacts = 4

// Manifold is the set of contacts between two bodies found in one step.
type Manifold struct {
	BodyA, BodyB BodyHandle
	Contacts     [MaxContacts]Contact
	ContactCount int
}

// add appends a contact and reports whether the manifold still has room.
func (m *Manifold) add(c Contact) bool {
	if m.ContactCount >= MaxContacts {
		return false
	}
	m.Contacts[m.ContactCount] = c
	m.ContactCount++
	return m.ContactCount < MaxContacts
}

// ContactList returns the filled contacts.
func (m *Manifold) ContactList() []Contact {
	return m.Contacts[:m.ContactCount]
}
