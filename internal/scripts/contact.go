package scripts

import (
	"fmt"
	"log"

	"colony3d/internal/engine"
)

func init() {
	engine.RegisterScript("ContactCounter", contactCounterFactory)
	engine.RegisterScript("ContactLogger", contactLoggerFactory)
}

// ContactCounter tracks how many objects touch its GameObject. When Tag is
// set, only objects carrying that tag are counted.
type ContactCounter struct {
	engine.BaseComponent
	Tag string

	Touching int
	Enters   int
	Exits    int
}

func (c *ContactCounter) counts(other *engine.GameObject) bool {
	return c.Tag == "" || (other != nil && other.HasTag(c.Tag))
}

func (c *ContactCounter) OnCollisionEnter(other *engine.GameObject) {
	if !c.counts(other) {
		return
	}
	c.Touching++
	c.Enters++
}

func (c *ContactCounter) OnCollisionExit(other *engine.GameObject) {
	if !c.counts(other) {
		return
	}
	c.Touching--
	c.Exits++
}

func contactCounterFactory(props map[string]any) (engine.Component, error) {
	c := &ContactCounter{}
	if v, ok := props["tag"]; ok {
		tag, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("tag must be a string, got %T", v)
		}
		c.Tag = tag
	}
	return c, nil
}

// ContactLogger logs every collision its GameObject takes part in.
type ContactLogger struct {
	engine.BaseComponent
	Prefix string
}

func (l *ContactLogger) name(g *engine.GameObject) string {
	if g == nil {
		return "<none>"
	}
	return g.Name
}

func (l *ContactLogger) OnCollisionEnter(other *engine.GameObject) {
	log.Printf("%s: %s touched %s", l.Prefix, l.name(l.GetGameObject()), l.name(other))
}

func (l *ContactLogger) OnCollisionExit(other *engine.GameObject) {
	log.Printf("%s: %s left %s", l.Prefix, l.name(l.GetGameObject()), l.name(other))
}

func contactLoggerFactory(props map[string]any) (engine.Component, error) {
	l := &ContactLogger{Prefix: "Contact"}
	if v, ok := props["prefix"].(string); ok && v != "" {
		l.Prefix = v
	}
	return l, nil
}
