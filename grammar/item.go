package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// Item is an LR(0) item, a production with a dot in its body.
//
// E → E + T
//
// Dot | Dotted Symbol | Item
// ----+---------------+------------
// 0   | E             | E →・E + T
// 1   | +             | E → E・+ T
// 2   | T             | E → E +・T
// 3   | Nil           | E → E + T・
type Item struct {
	Prod *Production
	Dot  int
}

func newItem(prod *Production, dot int) (Item, error) {
	if prod == nil {
		return Item{}, fmt.Errorf("production must be non-nil")
	}
	if dot < 0 || dot > len(prod.Body) {
		return Item{}, fmt.Errorf("dot must be between 0 and %v", len(prod.Body))
	}
	return Item{
		Prod: prod,
		Dot:  dot,
	}, nil
}

// DottedSymbol returns the symbol right after the dot. It returns false for
// a completed item.
func (i Item) DottedSymbol() (Symbol, bool) {
	if i.IsCompleted() {
		return "", false
	}
	return i.Prod.Body[i.Dot], true
}

// IsCompleted reports whether the dot is at the end of the body.
func (i Item) IsCompleted() bool {
	return i.Dot == len(i.Prod.Body)
}

// Equals compares items by production value and dot position.
func (i Item) Equals(j Item) bool {
	return i.Dot == j.Dot && i.Prod.Equals(j.Prod)
}

func (i Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ::", i.Prod.Head)
	for n, sym := range i.Prod.Body {
		if n == i.Dot {
			b.WriteString(" ・")
			b.WriteString(string(sym))
			continue
		}
		fmt.Fprintf(&b, " %v", sym)
	}
	if i.IsCompleted() {
		b.WriteString(" ・")
	}
	return b.String()
}

// itemKey is the value a kernel fingerprint is computed from.
type itemKey struct {
	Head string
	Body []string
	Dot  int
}

func (i Item) key() itemKey {
	body := make([]string, len(i.Prod.Body))
	for n, sym := range i.Prod.Body {
		body[n] = string(sym)
	}
	return itemKey{
		Head: string(i.Prod.Head),
		Body: body,
		Dot:  i.Dot,
	}
}

func (k itemKey) less(l itemKey) bool {
	if k.Head != l.Head {
		return k.Head < l.Head
	}
	for n := 0; n < len(k.Body) && n < len(l.Body); n++ {
		if k.Body[n] != l.Body[n] {
			return k.Body[n] < l.Body[n]
		}
	}
	if len(k.Body) != len(l.Body) {
		return len(k.Body) < len(l.Body)
	}
	return k.Dot < l.Dot
}

// Kernel is the ordered list of items a state is made from. Items appear in
// the order the goto function produced them.
type Kernel []Item

func (k Kernel) keys() []itemKey {
	keys := make([]itemKey, len(k))
	for n, item := range k {
		keys[n] = item.key()
	}
	return keys
}

func (k Kernel) sortedKeys() []itemKey {
	keys := k.keys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].less(keys[j])
	})
	return keys
}

// equalsOrdered compares two kernels item by item.
func (k Kernel) equalsOrdered(l Kernel) bool {
	if len(k) != len(l) {
		return false
	}
	for n := range k {
		if !k[n].Equals(l[n]) {
			return false
		}
	}
	return true
}

// equalsAsSet compares two kernels regardless of item order.
func (k Kernel) equalsAsSet(l Kernel) bool {
	if len(k) != len(l) {
		return false
	}
	for _, item := range k {
		found := false
		for _, other := range l {
			if item.Equals(other) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
