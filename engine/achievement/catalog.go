package achievement

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateRule = errors.New("duplicate badge rule")
	ErrInvalidRule   = errors.New("invalid badge rule")
)

// Catalog 有序的徽章定义目录, 构造后只读
type Catalog struct {
	defs  []Definition
	index map[string]int
}

// NewCatalog 按给定顺序构建目录
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidRule)
		}
		if d.Predicate == nil {
			return nil, fmt.Errorf("%w: rule %s has no predicate", ErrInvalidRule, d.ID)
		}
		if _, ok := c.index[d.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, d.ID)
		}
		c.index[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// Definitions 按目录顺序返回全部定义的副本
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Lookup 按 id 查找定义
func (c *Catalog) Lookup(id string) (Definition, bool) {
	i, ok := c.index[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

func (c *Catalog) Len() int {
	return len(c.defs)
}
