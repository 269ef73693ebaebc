package accommodation

import (
	"fmt"
	"strings"
)

// Class is the visual category a hotel name suggests.
type Class string

const (
	ClassPalace  Class = "palace"
	ClassResort  Class = "resort"
	ClassLuxury  Class = "luxury"
	ClassBudget  Class = "budget"
	ClassDefault Class = "default"
)

// Checked in this order; the first class with a matching keyword wins.
var classKeywords = []struct {
	class    Class
	keywords []string
}{
	{ClassPalace, []string{"palace", "palais", "palazzo", "castle", "château", "chateau", "fort", "heritage", "haveli"}},
	{ClassResort, []string{"resort", "spa", "beach", "villa", "retreat", "lagoon", "island"}},
	{ClassLuxury, []string{"luxury", "grand", "royal", "ritz", "plaza", "premium", "four seasons", "imperial", "regent"}},
	{ClassBudget, []string{"hostel", "inn", "budget", "motel", "lodge", "guest house", "guesthouse", "b&b", "capsule"}},
}

var imagePools = map[Class][]string{
	ClassPalace: {
		"https://images.unsplash.com/photo-1566073771259-6a8506099945",
		"https://images.unsplash.com/photo-1542314831-068cd1dbfeeb",
		"https://images.unsplash.com/photo-1549294413-26f195200c16",
		"https://images.unsplash.com/photo-1590073242678-70ee3fc28e8e",
		"https://images.unsplash.com/photo-1512918728675-ed5a9ecdebfd",
	},
	ClassResort: {
		"https://images.unsplash.com/photo-1520250497591-112f2f40a3f4",
		"https://images.unsplash.com/photo-1571896349842-33c89424de2d",
		"https://images.unsplash.com/photo-1582719508461-905c673771fd",
		"https://images.unsplash.com/photo-1540541338287-41700207dee6",
		"https://images.unsplash.com/photo-1573843981267-be1999ff37cd",
	},
	ClassLuxury: {
		"https://images.unsplash.com/photo-1551882547-ff40c63fe5fa",
		"https://images.unsplash.com/photo-1564501049412-61c2a3083791",
		"https://images.unsplash.com/photo-1618773928121-c32242e63f39",
		"https://images.unsplash.com/photo-1578683010236-d716f9a3f461",
		"https://images.unsplash.com/photo-1611892440504-42a792e24d32",
	},
	ClassBudget: {
		"https://images.unsplash.com/photo-1555854877-bab0e564b8d5",
		"https://images.unsplash.com/photo-1596394516093-501ba68a0ba6",
		"https://images.unsplash.com/photo-1522798514-97ceb8c4f1c8",
		"https://images.unsplash.com/photo-1631049307264-da0ec9d70304",
	},
	ClassDefault: {
		"https://images.unsplash.com/photo-1445019980597-93fa8acb246c",
		"https://images.unsplash.com/photo-1455587734955-081b22074882",
		"https://images.unsplash.com/photo-1584132967334-10e028bd69f7",
		"https://images.unsplash.com/photo-1568495248636-6432b97bd949",
		"https://images.unsplash.com/photo-1563911302283-d2bc129e7570",
	},
}

// Classify maps a hotel name onto an image class. Pure.
func Classify(name string) Class {
	n := strings.ToLower(name)
	for _, ck := range classKeywords {
		for _, kw := range ck.keywords {
			if containsWord(n, kw) {
				return ck.class
			}
		}
	}
	return ClassDefault
}

// containsWord matches kw on word boundaries so "Inn" does not match "Innsbruck".
func containsWord(s, kw string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if isBoundary(s, start-1) && isBoundary(s, end) {
			return true
		}
		from = start + 1
	}
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c >= 0x80)
}

// pickImages returns 3 or 4 distinct images from the class pool, each with a
// cache-busting sig parameter.
func pickImages(class Class, rnd RandSource) []string {
	pool := imagePools[class]
	if len(pool) == 0 {
		pool = imagePools[ClassDefault]
	}
	n := 3 + rnd.Intn(2)
	if n > len(pool) {
		n = len(pool)
	}
	idx := shuffled(len(pool), rnd)
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, fmt.Sprintf("%s?w=800&q=80&sig=%d", pool[i], rnd.Intn(1_000_000)))
	}
	return out
}

// shuffled is a Fisher-Yates permutation of [0, n) drawn from rnd.
func shuffled(n int, rnd RandSource) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}
