package engine

// GameObjectRef refers to a GameObject by UID so that data loaded from a
// scene file can name objects that may be removed later. The zero value
// refers to nothing.
type GameObjectRef struct {
	UID uint64
}

// RefTo returns a reference to g, or an empty reference when g is nil.
func RefTo(g *GameObject) GameObjectRef {
	if g == nil {
		return GameObjectRef{}
	}
	return GameObjectRef{UID: g.UID}
}

// Get resolves the reference in scene. It returns nil when the reference is
// empty or the object is no longer part of the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}
