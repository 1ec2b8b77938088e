package main

import (
	"errors"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/btree"
)

var (
	ErrAdvertNotFound   = errors.New("advert not found")
	ErrIDSpaceExhausted = errors.New("advert id space exhausted")
)

const (
	// DefaultIDMaxAttempts is the number of random draws made before
	// falling back to a linear scan of the identifiers space.
	DefaultIDMaxAttempts = 1000

	advertIDSpace = MaxAdvertID - MinAdvertID + 1
	priceDegree   = 16
)

var _ CatalogIndexer = (*CatalogIndex)(nil) // ensure CatalogIndex implements CatalogIndexer.

// CatalogIndexer describes the in-memory adverts catalog.
type CatalogIndexer interface {
	Create(advert Advert) (Advert, error)
	CreateMany(adverts []Advert) ([]Advert, error)
	GetAll() []Advert
	GetByCategory(category string) []Advert
	GetByMaxPrice(maxPrice float64) []Advert
	Update(id int, advert Advert) (Advert, error)
	Delete(id int) bool
	Clear()
	Stats() IndexStats
	OnChange(fn func(IndexStats))
}

// Randomizer is the source of random identifiers.
type Randomizer interface {
	IntN(n int) int
}

// IndexStats summarizes the content of the catalog.
type IndexStats struct {
	Adverts    int `json:"adverts"`
	Categories int `json:"categories"`
	Prices     int `json:"prices"`
}

// priceBucket holds the identifiers of adverts sharing the same price
// in their insertion order.
type priceBucket struct {
	price float64
	ids   []int
}

func lessPriceBucket(a, b *priceBucket) bool {
	return a.price < b.price
}

// CatalogIndex keeps adverts in three synchronized views: by identifier,
// by category and by ascending price. A single lock guards all views so
// readers never observe one view updated without the others.
type CatalogIndex struct {
	mu          sync.RWMutex
	rnd         Randomizer
	maxAttempts int
	byID        map[int]Advert
	byCategory  map[string][]int
	byPrice     *btree.BTreeG[*priceBucket]
	onChange    func(IndexStats)
}

// NewCatalogIndex provides an empty catalog. A nil randomizer defaults to
// a time seeded PCG source and a non-positive attempts value defaults to
// DefaultIDMaxAttempts.
func NewCatalogIndex(rnd Randomizer, maxAttempts int) *CatalogIndex {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultIDMaxAttempts
	}
	return &CatalogIndex{
		rnd:         rnd,
		maxAttempts: maxAttempts,
		byID:        make(map[int]Advert),
		byCategory:  make(map[string][]int),
		byPrice:     btree.NewG[*priceBucket](priceDegree, lessPriceBucket),
	}
}

// Create assigns a fresh identifier to the advert and indexes it.
func (ci *CatalogIndex) Create(advert Advert) (Advert, error) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	created, err := ci.create(advert)
	if err == nil {
		ci.notify()
	}
	return created, err
}

// CreateMany indexes all adverts in order. Either all adverts are stored
// or none of them.
func (ci *CatalogIndex) CreateMany(adverts []Advert) ([]Advert, error) {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	created := make([]Advert, 0, len(adverts))
	for _, advert := range adverts {
		stored, err := ci.create(advert)
		if err != nil {
			for _, a := range created {
				ci.remove(a.ID)
			}
			return nil, err
		}
		created = append(created, stored)
	}
	if len(created) > 0 {
		ci.notify()
	}
	return created, nil
}

// GetOne returns the advert stored under id.
func (ci *CatalogIndex) GetOne(id int) (Advert, error) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	advert, ok := ci.byID[id]
	if !ok {
		return Advert{}, ErrAdvertNotFound
	}
	return advert, nil
}

// GetAll returns every stored advert ordered by identifier.
func (ci *CatalogIndex) GetAll() []Advert {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	adverts := make([]Advert, 0, len(ci.byID))
	for _, advert := range ci.byID {
		adverts = append(adverts, advert)
	}
	sort.Slice(adverts, func(i, j int) bool { return adverts[i].ID < adverts[j].ID })
	return adverts
}

// GetByCategory returns the adverts of the exact category in insertion order.
func (ci *CatalogIndex) GetByCategory(category string) []Advert {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.resolve(ci.byCategory[category], make([]Advert, 0))
}

// GetByMaxPrice returns the adverts priced at most maxPrice, cheapest
// buckets first.
func (ci *CatalogIndex) GetByMaxPrice(maxPrice float64) []Advert {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	adverts := make([]Advert, 0)
	ci.byPrice.Ascend(func(b *priceBucket) bool {
		if b.price > maxPrice {
			return false
		}
		adverts = ci.resolve(b.ids, adverts)
		return true
	})
	return adverts
}

// Update replaces the advert stored under id and re-indexes it.
func (ci *CatalogIndex) Update(id int, advert Advert) (Advert, error) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	if _, ok := ci.byID[id]; !ok {
		return Advert{}, ErrAdvertNotFound
	}
	ci.remove(id)
	advert.ID = id
	ci.insert(advert)
	ci.notify()
	return advert, nil
}

// Delete removes the advert from all views. It reports whether
// the advert existed. Unknown identifiers are ignored.
func (ci *CatalogIndex) Delete(id int) bool {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	removed := ci.remove(id)
	if removed {
		ci.notify()
	}
	return removed
}

// Clear drops every advert.
func (ci *CatalogIndex) Clear() {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.byID = make(map[int]Advert)
	ci.byCategory = make(map[string][]int)
	ci.byPrice.Clear(false)
	ci.notify()
}

// Stats returns the current catalog sizes.
func (ci *CatalogIndex) Stats() IndexStats {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.stats()
}

// OnChange registers fn to receive the catalog sizes after every mutation.
// It is called with the write lock held so successive calls observe the
// mutations in the order they were applied. fn must not call the index.
func (ci *CatalogIndex) OnChange(fn func(IndexStats)) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.onChange = fn
	if fn != nil {
		fn(ci.stats())
	}
}

func (ci *CatalogIndex) stats() IndexStats {
	return IndexStats{
		Adverts:    len(ci.byID),
		Categories: len(ci.byCategory),
		Prices:     ci.byPrice.Len(),
	}
}

// notify must be called with the write lock held.
func (ci *CatalogIndex) notify() {
	if ci.onChange != nil {
		ci.onChange(ci.stats())
	}
}

// create must be called with the write lock held.
func (ci *CatalogIndex) create(advert Advert) (Advert, error) {
	id, err := ci.generateID()
	if err != nil {
		return Advert{}, err
	}
	advert.ID = id
	ci.insert(advert)
	return advert, nil
}

// generateID draws random identifiers until a free one is found. After
// maxAttempts collisions it scans linearly from the last draw so a free
// identifier is always found while one exists.
func (ci *CatalogIndex) generateID() (int, error) {
	if len(ci.byID) >= advertIDSpace {
		return 0, ErrIDSpaceExhausted
	}
	var offset int
	for i := 0; i < ci.maxAttempts; i++ {
		offset = ci.rnd.IntN(advertIDSpace)
		if _, taken := ci.byID[MinAdvertID+offset]; !taken {
			return MinAdvertID + offset, nil
		}
	}
	for i := 1; i < advertIDSpace; i++ {
		id := MinAdvertID + (offset+i)%advertIDSpace
		if _, taken := ci.byID[id]; !taken {
			return id, nil
		}
	}
	return 0, ErrIDSpaceExhausted
}

func (ci *CatalogIndex) insert(advert Advert) {
	ci.byID[advert.ID] = advert
	ci.byCategory[advert.Category] = append(ci.byCategory[advert.Category], advert.ID)
	bucket, ok := ci.byPrice.Get(&priceBucket{price: advert.Price})
	if !ok {
		bucket = &priceBucket{price: advert.Price}
		ci.byPrice.ReplaceOrInsert(bucket)
	}
	bucket.ids = append(bucket.ids, advert.ID)
}

func (ci *CatalogIndex) remove(id int) bool {
	advert, ok := ci.byID[id]
	if !ok {
		return false
	}
	delete(ci.byID, id)

	if ids := removeID(ci.byCategory[advert.Category], id); len(ids) == 0 {
		delete(ci.byCategory, advert.Category)
	} else {
		ci.byCategory[advert.Category] = ids
	}

	if bucket, found := ci.byPrice.Get(&priceBucket{price: advert.Price}); found {
		bucket.ids = removeID(bucket.ids, id)
		if len(bucket.ids) == 0 {
			ci.byPrice.Delete(bucket)
		}
	}
	return true
}

func (ci *CatalogIndex) resolve(ids []int, dst []Advert) []Advert {
	for _, id := range ids {
		dst = append(dst, ci.byID[id])
	}
	return dst
}

// removeID drops the first occurrence of id keeping the order of the others.
func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
