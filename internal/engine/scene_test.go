package engine

import "testing"

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Colony")
	obj := NewGameObject("Queen")

	scene.AddGameObject(obj)

	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != obj {
		t.Fatalf("GameObject not added to scene: %v", scene.GameObjects)
	}
	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}
	if scene.FindByUID(obj.UID) != obj {
		t.Error("FindByUID failed for added object")
	}
	if scene.FindByUID(99999) != nil {
		t.Error("FindByUID should return nil for non-existent UID")
	}
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Colony")
	obj1 := NewGameObject("Worker")
	obj2 := NewGameObject("Soldier")
	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)

	scene.RemoveGameObject(obj1)

	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != obj2 {
		t.Fatalf("Wrong GameObject removed: %v", scene.GameObjects)
	}
	if scene.FindByUID(obj1.UID) != nil {
		t.Error("Removed GameObject still in UID map")
	}
	if obj1.Scene != nil {
		t.Error("Removed GameObject should not point at the scene")
	}
}

func TestSceneRemoveWithChildren(t *testing.T) {
	scene := NewScene("Colony")
	parent := NewGameObject("Nest")
	child := NewGameObject("Chamber")
	scene.AddGameObject(parent)
	scene.AddGameObject(child)
	parent.AddChild(child)

	scene.RemoveGameObject(parent)

	if len(scene.GameObjects) != 0 {
		t.Errorf("Expected 0 GameObjects, got %d", len(scene.GameObjects))
	}
	if scene.FindByUID(child.UID) != nil {
		t.Error("Child still in UID map after removal")
	}
}

func TestSceneFind(t *testing.T) {
	scene := NewScene("Colony")
	a := NewGameObject("Ant1")
	b := NewGameObject("Ant2")
	c := NewGameObject("Rock")
	a.Tags = []string{"ant", "worker"}
	b.Tags = []string{"ant"}
	c.Tags = []string{"terrain"}
	scene.AddGameObject(a)
	scene.AddGameObject(b)
	scene.AddGameObject(c)

	if scene.FindByName("Rock") != c {
		t.Error("FindByName failed")
	}
	if scene.FindByName("DoesNotExist") != nil {
		t.Error("FindByName should return nil for non-existent name")
	}

	tests := []struct {
		tag  string
		want int
	}{
		{"ant", 2},
		{"worker", 1},
		{"terrain", 1},
		{"nonexistent", 0},
	}
	for _, tt := range tests {
		if got := len(scene.FindByTag(tt.tag)); got != tt.want {
			t.Errorf("FindByTag(%q) = %d objects, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestSceneUIDMapInitialization(t *testing.T) {
	scene := &Scene{Name: "Literal"}
	obj := NewGameObject("Test")

	scene.AddGameObject(obj)

	if scene.FindByUID(obj.UID) != obj {
		t.Error("uidMap should be created on first AddGameObject")
	}
}
