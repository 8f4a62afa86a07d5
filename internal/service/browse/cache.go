package browse

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/vocabindex/internal/domain"
)

type pageKey struct {
	gen  uint64
	uid  string
	page int
}

// cache holds reader data for one generation. Every lookup returns the
// generation it observed; a store is dropped when the generation has moved
// on, so a load racing with invalidate never resurrects stale data.
type cache struct {
	mu        sync.RWMutex
	gen       uint64
	langvars  map[string]domain.Langvar
	charIndex map[string][]domain.CharPage
	all       []domain.Langvar
	allLoaded bool

	pages *lru.Cache[pageKey, []domain.Expr]
}

func newCache(pageCacheSize int) *cache {
	pages, err := lru.New[pageKey, []domain.Expr](pageCacheSize)
	if err != nil {
		// Only returned for non-positive sizes, which config validation rejects.
		panic(err)
	}
	return &cache{
		langvars:  make(map[string]domain.Langvar),
		charIndex: make(map[string][]domain.CharPage),
		pages:     pages,
	}
}

func (c *cache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *cache) invalidate() uint64 {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.langvars = make(map[string]domain.Langvar)
	c.charIndex = make(map[string][]domain.CharPage)
	c.all = nil
	c.allLoaded = false
	c.mu.Unlock()

	c.pages.Purge()
	return gen
}

func (c *cache) langvar(uid string) (domain.Langvar, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lv, ok := c.langvars[uid]
	return lv, c.gen, ok
}

func (c *cache) storeLangvar(gen uint64, lv domain.Langvar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		c.langvars[lv.UID] = lv
	}
}

func (c *cache) allLangvars() ([]domain.Langvar, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.all, c.gen, c.allLoaded
}

func (c *cache) storeAllLangvars(gen uint64, all []domain.Langvar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		c.all = all
		c.allLoaded = true
	}
}

func (c *cache) charPages(uid string) ([]domain.CharPage, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp, ok := c.charIndex[uid]
	return cp, c.gen, ok
}

func (c *cache) storeCharPages(gen uint64, uid string, cp []domain.CharPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		c.charIndex[uid] = cp
	}
}

func (c *cache) page(uid string, page int) ([]domain.Expr, uint64, bool) {
	gen := c.generation()
	exprs, ok := c.pages.Get(pageKey{gen: gen, uid: uid, page: page})
	return exprs, gen, ok
}

func (c *cache) storePage(gen uint64, uid string, page int, exprs []domain.Expr) {
	// Keys carry the generation, so a stale store is never read back.
	if c.generation() == gen {
		c.pages.Add(pageKey{gen: gen, uid: uid, page: page}, exprs)
	}
}
